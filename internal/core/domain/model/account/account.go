package account

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
)

// ErrAccountIsNotConstructed is returned for an Account built without NewAccount.
var ErrAccountIsNotConstructed = errors.New("account must be created via NewAccount constructor")

// Account is a login identity. The password is held only as a hash; checking
// it is the job of a PasswordHasher.
type Account struct {
	id           kernel.UUID
	email        string
	displayName  string
	role         Role
	passwordHash string

	isConstructed bool
}

// NewAccount validates and normalises the fields. Email is lower-cased.
func NewAccount(id kernel.UUID, email, displayName string, role Role, passwordHash string) (*Account, error) {
	a := &Account{isConstructed: true}

	if err := errors.Join(
		a.setID(id),
		a.setEmail(email),
		a.setDisplayName(displayName),
		a.setRole(role),
		a.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate returns ErrAccountIsNotConstructed for nil or zero accounts.
func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) ID() kernel.UUID {
	return a.id
}

func (a *Account) Email() string {
	return a.email
}

func (a *Account) DisplayName() string {
	return a.displayName
}

func (a *Account) Role() Role {
	return a.role
}

func (a *Account) PasswordHash() string {
	return a.passwordHash
}

// NormalizeEmail trims and lower-cases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setEmail(email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(normalized)
	if err != nil || parsed.Address != normalized {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an address", email))
	}
	a.email = normalized
	return nil
}

func (a *Account) setDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	a.displayName = name
	return nil
}

func (a *Account) setRole(role Role) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Account) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	a.passwordHash = hash
	return nil
}
