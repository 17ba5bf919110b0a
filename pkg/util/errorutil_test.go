package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOfWrapped(t *testing.T) {
	base := NewRoleMismatch("admin", "customer")
	wrapped := fmt.Errorf("login: %w", base)

	if got := CodeOf(wrapped); got != CodeRoleMismatch {
		t.Fatalf("CodeOf = %q, want %q", got, CodeRoleMismatch)
	}
	if !IsCode(wrapped, CodeRoleMismatch) {
		t.Error("IsCode should see through fmt.Errorf wrapping")
	}
	if IsCode(nil, CodeRoleMismatch) {
		t.Error("IsCode(nil) should be false")
	}
}

func TestToConsoleErrorPlainError(t *testing.T) {
	converted := ToConsoleError(errors.New("boom"))
	if converted.Code != CodeInternalError {
		t.Errorf("Code = %q, want %q", converted.Code, CodeInternalError)
	}
	if converted.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d", converted.HTTPStatus)
	}
}

func TestServerRejectedDefaultsMessage(t *testing.T) {
	err := NewServerRejected(http.StatusNotFound, "", nil)
	if err.Error() != "Not Found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Not Found")
	}
}

func TestCredentialRejectedUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCredentialRejected(cause)
	if !errors.Is(err, cause) {
		t.Error("credential error should unwrap to its cause")
	}
	if CodeOf(err) != CodeCredentialRejected {
		t.Errorf("CodeOf = %q", CodeOf(err))
	}
}
