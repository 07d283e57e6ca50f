package commands

import (
	"context"
	"errors"
	"fmt"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
)

// ErrAccountAlreadyExists is returned when the email is taken.
var ErrAccountAlreadyExists = errors.New("account already exists")

// RegisterAccountCommandHandler hashes the password and stores a new account.
type RegisterAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
}

func NewRegisterAccountCommandHandler(uowFactory AccountUoWFactory, hasher ports.PasswordHasher) RegisterAccountCommandHandler {
	return RegisterAccountCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h RegisterAccountCommandHandler) Handle(ctx context.Context, cmd RegisterAccountCommand) (*account.Account, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AccountRepository()
	_, err := repo.GetByEmail(ctx, cmd.Email())
	if err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountAlreadyExists, cmd.Email())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	acc, err := account.NewAccount(kernel.NewUUID(), cmd.Email(), cmd.DisplayName(), cmd.Role(), hash)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, acc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return acc, nil
}
