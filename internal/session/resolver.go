package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-console/internal/apiclient"
	"github.com/spec-kit/ticket-console/internal/domain"
	"github.com/spec-kit/ticket-console/internal/inflight"
	"github.com/spec-kit/ticket-console/internal/navigation"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
	"github.com/spec-kit/ticket-console/pkg/validation"
)

// Resolver authenticates a credential and verifies that the server-side
// role matches the role the user claimed before any session exists.
type Resolver struct {
	client   *apiclient.Client
	sessions *Manager
	logger   *zap.Logger
	guard    inflight.Guard
}

// NewResolver builds a resolver. client should read its token from sessions.
func NewResolver(client *apiclient.Client, sessions *Manager, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{client: client, sessions: sessions, logger: logger}
}

// Login runs the two-step protocol: exchange the credential for a token,
// then fetch the token's identity and compare roles. The token is only
// persisted once the roles match; a mismatch leaves no session behind.
func (r *Resolver) Login(ctx context.Context, claimed domain.Role, cred domain.Credential) (*domain.Session, navigation.Route, error) {
	release, err := r.guard.Begin("login")
	if err != nil {
		return nil, "", err
	}
	defer release()

	if !claimed.Valid() {
		return nil, "", apperrors.NewUnknownRole(string(claimed))
	}
	if err := validation.Check(cred); err != nil {
		return nil, "", err
	}

	token, err := r.client.Login(ctx, cred)
	if err != nil {
		r.logger.Info("login rejected", zap.String("claimed_role", string(claimed)), zap.Error(err))
		return nil, "", apperrors.NewCredentialRejected(err)
	}
	if token == "" {
		return nil, "", apperrors.NewCredentialRejected(errors.New("server returned no access token"))
	}

	identity, err := r.client.WithToken(token).Me(ctx)
	if err != nil {
		r.logger.Warn("identity lookup failed", zap.Error(err))
		return nil, "", apperrors.NewCredentialRejected(fmt.Errorf("resolve identity: %w", err))
	}

	actual := domain.Role(identity.Role)
	if actual != claimed {
		r.logger.Info("role mismatch",
			zap.String("claimed_role", string(claimed)),
			zap.String("server_role", identity.Role))
		return nil, "", apperrors.NewRoleMismatch(string(claimed), identity.Role)
	}

	route, err := navigation.RouteFor(actual)
	if err != nil {
		return nil, "", err
	}
	session, err := r.sessions.Create(ctx, token, actual)
	if err != nil {
		return nil, "", fmt.Errorf("persist session: %w", err)
	}
	return session, route, nil
}

// Resume restores a previously stored token. It returns a nil session and
// no error when nothing is stored. A token the server no longer accepts is
// cleared from the store; a transport failure keeps it for the next start.
func (r *Resolver) Resume(ctx context.Context) (*domain.Session, navigation.Route, error) {
	token, err := r.sessions.StoredToken(ctx)
	if err != nil {
		return nil, "", err
	}
	if token == "" {
		return nil, "", nil
	}

	identity, err := r.client.WithToken(token).Me(ctx)
	if err != nil {
		if status := apperrors.ToConsoleError(err).HTTPStatus; status == http.StatusUnauthorized || status == http.StatusForbidden {
			r.logger.Info("stored token rejected; clearing", zap.Int("status", status))
			if clearErr := r.sessions.Invalidate(ctx); clearErr != nil {
				return nil, "", clearErr
			}
			return nil, "", apperrors.NewCredentialRejected(err)
		}
		return nil, "", err
	}

	role := domain.Role(identity.Role)
	route, err := navigation.RouteFor(role)
	if err != nil {
		_ = r.sessions.Invalidate(ctx)
		return nil, "", err
	}
	session, err := r.sessions.Create(ctx, token, role)
	if err != nil {
		return nil, "", err
	}
	return session, route, nil
}

// Logout ends the active session.
func (r *Resolver) Logout(ctx context.Context) error {
	return r.sessions.Invalidate(ctx)
}
