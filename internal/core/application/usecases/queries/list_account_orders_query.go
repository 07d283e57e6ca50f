package queries

import (
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListAccountOrdersQueryIsNotConstructed = errors.New(
	"ListAccountOrdersQuery must be created via NewListAccountOrdersQuery constructor",
)

// ListAccountOrdersQuery lists the orders placed by the session's account,
// newest first. A limit of 0 means DefaultListLimit.
type ListAccountOrdersQuery struct { //nolint:recvcheck //using for validation
	session account.Session
	limit   int

	guard guard.ConstructorGuard
}

func NewListAccountOrdersQuery(session account.Session, limit int) (ListAccountOrdersQuery, error) {
	var sessionErr error
	if err := session.Validate(); err != nil {
		sessionErr = errs.ErrUnauthorized
	}

	if limit == 0 {
		limit = DefaultListLimit
	}
	var limitErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	if err := errors.Join(sessionErr, limitErr); err != nil {
		return ListAccountOrdersQuery{}, err
	}

	return ListAccountOrdersQuery{session: session, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListAccountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAccountOrdersQueryIsNotConstructed)
}

func (q ListAccountOrdersQuery) Session() account.Session {
	return q.session
}

func (q ListAccountOrdersQuery) Limit() int {
	return q.limit
}

// OrderSummary is one row of an account's order history.
type OrderSummary struct {
	ID              kernel.UUID
	PickupAddress   string
	DeliveryAddress string
	Category        string
	SchedulingType  string
	Status          string
	Total           kernel.Money
	CreatedAt       time.Time
}
