package queries

import (
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its tracking timeline on behalf of a
// session. Only the owner, or an account with the "manage" capability, may read it.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	session account.Session
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(session account.Session, orderID kernel.UUID) (GetOrderQuery, error) {
	var sessionErr error
	if err := session.Validate(); err != nil {
		sessionErr = errs.ErrUnauthorized
	}

	if err := errors.Join(sessionErr, orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{session: session, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Session() account.Session {
	return q.session
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PriceView is the stored price breakdown.
type PriceView struct {
	TariffVersion      string
	PremiumCategory    bool
	DistanceMeters     int
	BaseFee            kernel.Money
	CategoryFee        kernel.Money
	WeightSurcharge    kernel.Money
	DistanceFee        kernel.Money
	ScheduledSurcharge kernel.Money
	Total              kernel.Money
}

// TimelineEntry is one status change as stored on the order.
type TimelineEntry struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note"`
}

// GetOrderQueryResponse is an order as shown on its tracking page.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	AccountID       kernel.UUID
	PickupAddress   string
	DeliveryAddress string
	Category        string
	WeightGrams     int64
	SchedulingType  string
	PickupAt        *time.Time
	DropoffAt       *time.Time
	Price           PriceView
	ChargeID        string
	Status          string
	Timeline        []TimelineEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
