package ports

import (
	"context"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for accounts.
type AccountRepository interface {
	// Add persists a new account. Email must be unique.
	Add(ctx context.Context, a *account.Account) error

	// Get retrieves an account by id. Returns errs.ErrObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetByEmail retrieves an account by normalised email.
	// Returns errs.ErrObjectNotFound when missing.
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
}
