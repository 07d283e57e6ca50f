package ports

import (
	"context"

	"parcelquote/internal/core/domain/model/account"
)

// SessionStore keeps issued sessions until they expire.
type SessionStore interface {
	// Save stores s until s.ExpiresAt().
	Save(ctx context.Context, s account.Session) error

	// Get returns the session for token, or errs.ErrUnauthorized when it is
	// unknown or expired.
	Get(ctx context.Context, token string) (account.Session, error)

	// Delete removes token. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
