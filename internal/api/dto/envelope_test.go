package dto

import (
	"encoding/json"
	"testing"
)

func TestErrorBodyText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"envelope message", `{"status":"error","message":"Only admins can create categories"}`, "Only admins can create categories"},
		{"nested error", `{"error":{"code":"NOT_FOUND","message":"category not found"}}`, "category not found"},
		{"detail string", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"detail list", `{"detail":[{"loc":["body"],"msg":"field required"}]}`, ""},
		{"empty", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body ErrorBody
			if err := json.Unmarshal([]byte(tt.body), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := body.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
