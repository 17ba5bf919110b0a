package console

import (
	"net"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/mockapi/mockapitest"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

// loggedIn starts a backend, creates a user with role and returns deps whose
// client carries that user's token.
func loggedIn(t *testing.T, role domain.Role) (*mockapitest.Fixture, Deps) {
	t.Helper()
	backend := mockapitest.Start(t)
	email := string(role) + "@example.com"
	backend.CreateUser(t, role, "Test User", email)
	return backend, depsFor(backend, backend.Token(t, email))
}

func depsFor(backend *mockapitest.Fixture, token string) Deps {
	return Deps{Client: apiclient.New(apiclient.Options{BaseURL: backend.URL, Tokens: staticTokens(token)})}
}

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}
