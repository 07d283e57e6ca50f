package commands

import (
	"errors"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand exchanges demo credentials for a session.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	c := LoginCommand{guard: guard.NewConstructorGuard()}

	var emailErr, passwordErr error
	if c.email = account.NormalizeEmail(email); c.email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if c.password = password; c.password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}
