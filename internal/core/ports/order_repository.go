// Package ports defines the contracts between the parcel quote core and its
// infrastructure: repositories, the unit of work, and the external collaborators
// (geocoder, payment gateway, session store, password hasher, clock).
package ports

import (
	"context"
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/order"
)

// ErrOrderAlreadyExists is returned by Add when another order already has the
// same id or charge.
var ErrOrderAlreadyExists = errors.New("order already exists")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its timeline. Returns
	// ErrOrderAlreadyExists when the id or charge id is taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status and timeline of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ErrObjectNotFound when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByChargeID retrieves the order paid for by chargeID. Returns
	// errs.ErrObjectNotFound when no order holds the charge.
	GetByChargeID(ctx context.Context, chargeID string) (*order.Order, error)

	// GetDueForRelease returns up to limit Scheduled orders whose pickup time is
	// at or before now, earliest pickup first.
	GetDueForRelease(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)

	// GetAllTracking returns up to limit orders in Confirmed, PickedUp or
	// InTransit status, least recently updated first.
	GetAllTracking(ctx context.Context, limit int) ([]*order.Order, error)
}
