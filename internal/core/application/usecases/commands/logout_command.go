package commands

import (
	"context"
	"errors"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand ends a session.
type LogoutCommand struct {
	session account.Session

	guard guard.ConstructorGuard
}

func NewLogoutCommand(session account.Session) (LogoutCommand, error) {
	if err := session.Validate(); err != nil {
		return LogoutCommand{}, errs.ErrUnauthorized
	}
	return LogoutCommand{session: session, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

func (c LogoutCommand) Session() account.Session {
	return c.session
}

// LogoutCommandHandler removes the session from the store.
type LogoutCommandHandler struct {
	sessions ports.SessionStore
}

func NewLogoutCommandHandler(sessions ports.SessionStore) LogoutCommandHandler {
	return LogoutCommandHandler{sessions: sessions}
}

func (h LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.sessions.Delete(ctx, cmd.Session().Token())
}
