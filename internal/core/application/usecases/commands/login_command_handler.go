package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// The two cases are not distinguished.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", errs.ErrUnauthorized)

// LoginCommandHandler checks credentials and issues a session stored in the
// session store for ttl.
type LoginCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	sessions   ports.SessionStore
	clock      ports.Clock
	ttl        time.Duration
}

func NewLoginCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	sessions ports.SessionStore,
	clock ports.Clock,
	ttl time.Duration,
) LoginCommandHandler {
	return LoginCommandHandler{uowFactory: uowFactory, hasher: hasher, sessions: sessions, clock: clock, ttl: ttl}
}

// Handle returns the new session on success and ErrInvalidCredentials when the
// email is unknown or the password does not match.
func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (account.Session, error) {
	if err := cmd.Validate(); err != nil {
		return account.Session{}, err
	}

	acc, err := h.uowFactory.Create().AccountRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return account.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return account.Session{}, err
	}

	if err = h.hasher.Compare(acc.PasswordHash(), cmd.Password()); err != nil {
		return account.Session{}, ErrInvalidCredentials
	}

	session, err := account.NewSession(acc.ID(), acc.Role(), h.clock.Now(), h.ttl)
	if err != nil {
		return account.Session{}, err
	}

	if err = h.sessions.Save(ctx, session); err != nil {
		return account.Session{}, err
	}

	return session, nil
}
