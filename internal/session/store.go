// Package session owns the console's single bearer credential: where it is
// persisted, its create/invalidate lifecycle, and the login protocol that
// produces it.
package session

import "context"

// TokenStore persists exactly one token. Load returns "" when nothing is
// stored.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
