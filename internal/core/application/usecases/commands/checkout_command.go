package commands

import (
	"errors"
	"strings"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand turns a quote into a paid order. The price is recomputed at
// checkout; the client never supplies it.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	session        account.Session
	quote          RequestQuoteCommand
	card           ports.Card
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand validates that every part is present. Card details are
// checked by the payment gateway.
func NewCheckoutCommand(
	session account.Session,
	quote RequestQuoteCommand,
	card ports.Card,
	idempotencyKey string,
) (CheckoutCommand, error) {
	c := CheckoutCommand{guard: guard.NewConstructorGuard(), card: card}

	if err := errors.Join(
		c.setSession(session),
		c.setQuote(quote),
		c.setCard(card),
		c.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Session() account.Session {
	return c.session
}

func (c CheckoutCommand) Quote() RequestQuoteCommand {
	return c.quote
}

func (c CheckoutCommand) Card() ports.Card {
	return c.card
}

func (c CheckoutCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CheckoutCommand) setSession(s account.Session) error {
	if err := s.Validate(); err != nil {
		return errs.ErrUnauthorized
	}
	c.session = s
	return nil
}

func (c *CheckoutCommand) setQuote(q RequestQuoteCommand) error {
	if err := q.Validate(); err != nil {
		return err
	}
	c.quote = q
	return nil
}

func (c *CheckoutCommand) setCard(card ports.Card) error {
	if strings.TrimSpace(card.Number) == "" {
		return errs.NewValueIsRequiredError("card number")
	}
	return nil
}

func (c *CheckoutCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errs.NewValueIsRequiredError("idempotencyKey")
	}
	if len(key) > 128 {
		return errs.NewValueIsOutOfRangeError("idempotencyKey length", len(key), 1, 128)
	}
	c.idempotencyKey = key
	return nil
}
