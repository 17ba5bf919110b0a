// Package mockapitest runs the reference backend on a loopback port for
// tests.
package mockapitest

import (
	"context"
	"net"
	"testing"

	"github.com/spec-kit/ticket-console/internal/config"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/mockapi"
	"github.com/spec-kit/ticket-console/internal/observability"
	"github.com/spec-kit/ticket-console/internal/service"
)

// Password satisfies the backend's password rules.
const Password = "secret123"

// Fixture is a running backend.
type Fixture struct {
	URL     string
	Server  *mockapi.Server
	Metrics *observability.Metrics
}

// Start serves a fresh in-memory backend until the test ends.
func Start(t *testing.T) *Fixture {
	t.Helper()

	cfg := config.Config{
		App:  config.AppConfig{Name: "mockapi-test", Version: "test"},
		Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4},
	}
	server := mockapi.New(mockapi.Options{Config: cfg})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = server.App.Listener(ln) }()
	t.Cleanup(func() { _ = server.App.Shutdown() })

	return &Fixture{URL: "http://" + ln.Addr().String(), Server: server, Metrics: server.Metrics}
}

// CreateUser registers an account with role and Password. Admins are
// seeded directly since signup refuses them.
func (f *Fixture) CreateUser(t *testing.T, role domain.Role, name, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	var (
		user *domain.User
		err  error
	)
	if role == domain.RoleAdmin {
		user, err = f.Server.Auth.SeedAdmin(ctx, name, email, Password)
	} else {
		user, err = f.Server.Auth.Signup(ctx, service.SignupInput{
			Name:          name,
			Email:         email,
			Password:      Password,
			Role:          string(role),
			ContactNumber: "5550001234",
			Location:      "Berlin",
		})
	}
	if err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	return *user
}

// Token logs email in directly against the auth service.
func (f *Fixture) Token(t *testing.T, email string) string {
	t.Helper()
	token, _, err := f.Server.Auth.Login(context.Background(), email, Password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return token
}

// Requests returns how many requests hit method+path.
func (f *Fixture) Requests(method, path string) int64 {
	return f.Metrics.Requests(method, path)
}
