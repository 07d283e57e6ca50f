package commands

import (
	"errors"
	"unicode/utf8"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

var ErrRegisterAccountCommandIsNotConstructed = errors.New(
	"RegisterAccountCommand must be created via NewRegisterAccountCommand constructor",
)

// RegisterAccountCommand creates an account. It backs the demo account seed.
type RegisterAccountCommand struct { //nolint:recvcheck //using for validation
	email       string
	displayName string
	role        account.Role
	password    string

	guard guard.ConstructorGuard
}

func NewRegisterAccountCommand(email, displayName string, role account.Role, password string) (RegisterAccountCommand, error) {
	c := RegisterAccountCommand{
		email:       account.NormalizeEmail(email),
		displayName: displayName,
		role:        role,
		guard:       guard.NewConstructorGuard(),
	}

	_, roleErr := account.ParseRole(string(role))
	if err := errors.Join(roleErr, c.setPassword(password)); err != nil {
		return RegisterAccountCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

func (c RegisterAccountCommand) Email() string {
	return c.email
}

func (c RegisterAccountCommand) DisplayName() string {
	return c.displayName
}

func (c RegisterAccountCommand) Role() account.Role {
	return c.role
}

func (c RegisterAccountCommand) Password() string {
	return c.password
}

func (c *RegisterAccountCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if n := utf8.RuneCountInString(password); n < minPasswordLength || len(password) > maxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, minPasswordLength, maxPasswordLength)
	}
	c.password = password
	return nil
}
