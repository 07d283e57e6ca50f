package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order row.
type GetOrderQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetOrderQueryHandler(db *gorm.DB, clock ports.Clock) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, clock: clock}
}

// Handle returns errs.ErrObjectNotFound for unknown ids and errs.ErrForbidden
// when the session neither owns the order nor may manage orders.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	session := query.Session()
	if err := session.Authorize(h.clock.Now(), "track"); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			account_id,
			pickup_address,
			delivery_address,
			category,
			weight_grams,
			scheduling_type,
			pickup_at,
			dropoff_at,
			price_tariff_version,
			price_currency,
			price_premium_category,
			price_distance_meters,
			price_base_fee,
			price_category_fee,
			price_weight_surcharge,
			price_distance_fee,
			price_scheduled_surcharge,
			price_total,
			charge_id,
			status,
			timeline,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp                GetOrderQueryResponse
		id, accountID       uuid.UUID
		currency            string
		amounts             [6]int64
		timeline            []byte
		pickupAt, dropoffAt sql.NullTime
	)
	err := row.Scan(
		&id,
		&accountID,
		&resp.PickupAddress,
		&resp.DeliveryAddress,
		&resp.Category,
		&resp.WeightGrams,
		&resp.SchedulingType,
		&pickupAt,
		&dropoffAt,
		&resp.Price.TariffVersion,
		&currency,
		&resp.Price.PremiumCategory,
		&resp.Price.DistanceMeters,
		&amounts[0],
		&amounts[1],
		&amounts[2],
		&amounts[3],
		&amounts[4],
		&amounts[5],
		&resp.ChargeID,
		&resp.Status,
		&timeline,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.AccountID, err = kernel.UUIDFromBytes(accountID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if !resp.AccountID.IsEqual(session.AccountID()) && !session.Role().Can("manage") {
		return GetOrderQueryResponse{}, fmt.Errorf("%w: order %s belongs to another account", errs.ErrForbidden, resp.ID)
	}

	resp.PickupAt = nullTime(pickupAt)
	resp.DropoffAt = nullTime(dropoffAt)

	money := make([]kernel.Money, len(amounts))
	for i, minor := range amounts {
		if money[i], err = kernel.NewMoney(minor, currency); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}
	resp.Price.BaseFee = money[0]
	resp.Price.CategoryFee = money[1]
	resp.Price.WeightSurcharge = money[2]
	resp.Price.DistanceFee = money[3]
	resp.Price.ScheduledSurcharge = money[4]
	resp.Price.Total = money[5]

	if err = json.Unmarshal(timeline, &resp.Timeline); err != nil {
		return GetOrderQueryResponse{}, fmt.Errorf("decode timeline of order %s: %w", resp.ID, err)
	}

	return resp, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}
