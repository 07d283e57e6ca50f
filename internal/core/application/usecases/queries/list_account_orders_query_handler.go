package queries

import (
	"context"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAccountOrdersQueryHandler reads an account's order history.
type ListAccountOrdersQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewListAccountOrdersQueryHandler(db *gorm.DB, clock ports.Clock) ListAccountOrdersQueryHandler {
	return ListAccountOrdersQueryHandler{db: db, clock: clock}
}

// Handle returns the newest orders first. Ties on created_at are broken by id
// so that paging through equal timestamps is stable.
func (h ListAccountOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAccountOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	session := query.Session()
	if err := session.Authorize(h.clock.Now(), "track"); err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			pickup_address,
			delivery_address,
			category,
			scheduling_type,
			status,
			price_total,
			price_currency,
			created_at
		FROM orders
		WHERE account_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, session.AccountID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			summary  OrderSummary
			id       uuid.UUID
			total    int64
			currency string
		)
		err = rows.Scan(
			&id,
			&summary.PickupAddress,
			&summary.DeliveryAddress,
			&summary.Category,
			&summary.SchedulingType,
			&summary.Status,
			&total,
			&currency,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if summary.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if summary.Total, err = kernel.NewMoney(total, currency); err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
