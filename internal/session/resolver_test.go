package session

import (
	"context"
	"net"
	"testing"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/mockapi/mockapitest"
	"github.com/spec-kit/ticket-console/internal/navigation"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

type harness struct {
	backend  *mockapitest.Fixture
	store    *memoryStore
	manager  *Manager
	resolver *Resolver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := mockapitest.Start(t)
	store := &memoryStore{}
	manager := NewManager(store, nil, nil)
	client := apiclient.New(apiclient.Options{BaseURL: backend.URL, Tokens: manager})
	return &harness{
		backend:  backend,
		store:    store,
		manager:  manager,
		resolver: NewResolver(client, manager, nil),
	}
}

func TestLoginMatchingRole(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleCustomer, "Cora Customer", "cora@example.com")

	session, route, err := h.resolver.Login(context.Background(), domain.RoleCustomer,
		domain.Credential{Email: "cora@example.com", Password: mockapitest.Password})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if route != navigation.RouteCustomerHome {
		t.Errorf("route = %q", route)
	}
	if session.Role != domain.RoleCustomer || session.Token == "" {
		t.Errorf("session = %+v", session)
	}
	if h.store.stored() != session.Token {
		t.Error("token should be persisted after a role match")
	}
	if h.manager.Token() != session.Token {
		t.Error("later requests should carry the new token")
	}
}

func TestLoginRoleMismatchPersistsNothing(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleAdmin, "Ada Admin", "ada@example.com")

	session, route, err := h.resolver.Login(context.Background(), domain.RoleEngineer,
		domain.Credential{Email: "ada@example.com", Password: mockapitest.Password})
	if !apperrors.IsCode(err, apperrors.CodeRoleMismatch) {
		t.Fatalf("err = %v, want ROLE_MISMATCH", err)
	}
	if session != nil || route != "" {
		t.Errorf("mismatch must not navigate: %+v %q", session, route)
	}
	if h.store.stored() != "" || h.store.saves != 0 {
		t.Error("mismatch must not persist the token")
	}
	if _, ok := h.manager.Current(); ok {
		t.Error("mismatch must not leave an active session")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser(t, domain.RoleAgent, "Al Agent", "al@example.com")

	_, _, err := h.resolver.Login(context.Background(), domain.RoleAgent,
		domain.Credential{Email: "al@example.com", Password: "wrong999"})
	if !apperrors.IsCode(err, apperrors.CodeCredentialRejected) {
		t.Fatalf("err = %v, want CREDENTIAL_REJECTED", err)
	}
	if n := h.backend.Requests("GET", apiclient.PathMe); n != 0 {
		t.Errorf("identity fetched %d times after a rejected login", n)
	}
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name    string
		claimed domain.Role
		cred    domain.Credential
		code    string
	}{
		{"unknown role", domain.Role("root"), domain.Credential{Email: "a@b.c", Password: "x"}, apperrors.CodeUnknownRole},
		{"missing password", domain.RoleAdmin, domain.Credential{Email: "a@b.c"}, apperrors.CodeValidationFailed},
		{"missing both", domain.RoleAdmin, domain.Credential{}, apperrors.CodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.resolver.Login(context.Background(), tt.claimed, tt.cred)
			if !apperrors.IsCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if n := h.backend.Requests("POST", apiclient.PathLogin); n != 0 {
		t.Errorf("login endpoint hit %d times", n)
	}
}

func TestResume(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	session, _, err := h.resolver.Resume(ctx)
	if err != nil || session != nil {
		t.Fatalf("Resume with empty store = %+v, %v", session, err)
	}

	h.backend.CreateUser(t, domain.RoleManager, "Mo Manager", "mo@example.com")
	_ = h.store.Save(ctx, h.backend.Token(t, "mo@example.com"))

	session, route, err := h.resolver.Resume(ctx)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if session.Role != domain.RoleManager || route != navigation.RouteManagerOverview {
		t.Errorf("Resume = %+v, %q", session, route)
	}

	if err := h.resolver.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if h.store.stored() != "" || h.manager.Token() != "" {
		t.Error("Logout should clear the session")
	}
}

func TestResumeClearsRejectedToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.store.Save(ctx, "not-a-jwt")

	_, _, err := h.resolver.Resume(ctx)
	if !apperrors.IsCode(err, apperrors.CodeCredentialRejected) {
		t.Fatalf("err = %v, want CREDENTIAL_REJECTED", err)
	}
	if h.store.stored() != "" {
		t.Error("a rejected token should be cleared")
	}
}

func TestResumeKeepsTokenOnTransportFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	store := &memoryStore{token: "kept"}
	manager := NewManager(store, nil, nil)
	client := apiclient.New(apiclient.Options{BaseURL: "http://" + addr, Tokens: manager})
	resolver := NewResolver(client, manager, nil)

	_, _, err = resolver.Resume(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeFetchError) {
		t.Fatalf("err = %v, want FETCH_ERROR", err)
	}
	if store.stored() != "kept" {
		t.Error("transport failures must not discard the stored token")
	}
}
