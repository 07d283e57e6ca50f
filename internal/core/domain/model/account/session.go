package account

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const tokenBytes = 32

// ErrSessionIsNotConstructed is returned for a Session built without a constructor.
var ErrSessionIsNotConstructed = errs.NewValueIsRequiredError("session must be created via NewSession")

// Session is an authenticated caller. It replaces any ambient "current user"
// lookup: handlers resolve it from the bearer token and pass it down.
type Session struct { //nolint:recvcheck //using for validation
	token     string
	accountID kernel.UUID
	role      Role
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

// NewSession issues a session with a fresh random token valid for ttl from now.
func NewSession(accountID kernel.UUID, role Role, now time.Time, ttl time.Duration) (Session, error) {
	if ttl <= 0 {
		return Session{}, errs.NewValueIsOutOfRangeError("session ttl", ttl, "1ns", "unbounded")
	}
	token, err := newToken()
	if err != nil {
		return Session{}, err
	}
	return RestoreSession(token, accountID, role, now.Add(ttl))
}

// RestoreSession rebuilds a session read from a session store.
func RestoreSession(token string, accountID kernel.UUID, role Role, expiresAt time.Time) (Session, error) {
	var tokenErr error
	if token == "" {
		tokenErr = errs.NewValueIsRequiredError("token")
	}
	_, roleErr := ParseRole(string(role))
	if err := errors.Join(tokenErr, accountID.Validate(), roleErr); err != nil {
		return Session{}, err
	}
	return Session{
		token:     token,
		accountID: accountID,
		role:      role,
		expiresAt: expiresAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrSessionIsNotConstructed for the zero value.
func (s Session) Validate() error {
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s Session) Token() string {
	return s.token
}

func (s Session) AccountID() kernel.UUID {
	return s.accountID
}

func (s Session) Role() Role {
	return s.role
}

func (s Session) ExpiresAt() time.Time {
	return s.expiresAt
}

// IsExpired reports whether now is at or past the expiry.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.expiresAt)
}

// Authorize checks that the session is constructed, unexpired at now and
// grants capability.
func (s Session) Authorize(now time.Time, capability string) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	if s.IsExpired(now) {
		return fmt.Errorf("%w: session expired at %s", errs.ErrUnauthorized, s.expiresAt.Format(time.RFC3339))
	}
	if !s.role.Can(capability) {
		return fmt.Errorf("%w: role %s cannot %s", errs.ErrForbidden, s.role, capability)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
