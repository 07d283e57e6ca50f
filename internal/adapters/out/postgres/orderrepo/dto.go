// Package orderrepo persists order aggregates with GORM. The quote request and
// price snapshot are flattened into columns; the tracking timeline is stored as
// a JSONB document.
package orderrepo

import (
	"encoding/json"
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID `gorm:"type:uuid;index;not null"`
	PickupAddress   string    `gorm:"size:256;not null"`
	DeliveryAddress string    `gorm:"size:256;not null"`
	Category        string    `gorm:"size:32;not null"`
	WeightGrams     int64     `gorm:"not null"`
	SchedulingType  string    `gorm:"size:16;not null"`
	PickupAt        *time.Time
	DropoffAt       *time.Time
	Price           PriceDTO `gorm:"embedded;embeddedPrefix:price_"`
	ChargeID        string   `gorm:"size:64;uniqueIndex;not null"`
	Status          string   `gorm:"size:16;index;not null"`
	Timeline        datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// PriceDTO is the embedded price snapshot, amounts in minor units.
type PriceDTO struct {
	TariffVersion      string `gorm:"size:32"`
	Currency           string `gorm:"size:3"`
	PremiumCategory    bool
	DistanceMeters     int
	BaseFee            int64
	CategoryFee        int64
	WeightSurcharge    int64
	DistanceFee        int64
	ScheduledSurcharge int64
	Total              int64
}

// EventDTO is one element of the timeline JSON array.
type EventDTO struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
	Note   string    `json:"note"`
}

func fromDomain(o *order.Order) (OrderDTO, error) {
	req := o.Request()
	scheduling := req.Scheduling()

	var pickupAt, dropoffAt *time.Time
	if scheduling.IsScheduled() {
		p, d := scheduling.PickupAt(), scheduling.DropoffAt()
		pickupAt, dropoffAt = &p, &d
	}

	timeline, err := EncodeTimeline(o.Timeline())
	if err != nil {
		return OrderDTO{}, err
	}

	price := o.Price()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		AccountID:       o.AccountID().Bytes(),
		PickupAddress:   req.PickupAddress(),
		DeliveryAddress: req.DeliveryAddress(),
		Category:        req.Category().String(),
		WeightGrams:     req.Weight().Grams(),
		SchedulingType:  string(scheduling.Type()),
		PickupAt:        pickupAt,
		DropoffAt:       dropoffAt,
		Price: PriceDTO{
			TariffVersion:      price.TariffVersion,
			Currency:           price.Total.Currency(),
			PremiumCategory:    price.PremiumCategory,
			DistanceMeters:     price.DistanceMeters,
			BaseFee:            price.BaseFee.Minor(),
			CategoryFee:        price.CategoryFee.Minor(),
			WeightSurcharge:    price.WeightSurcharge.Minor(),
			DistanceFee:        price.DistanceFee.Minor(),
			ScheduledSurcharge: price.ScheduledSurcharge.Minor(),
			Total:              price.Total.Minor(),
		},
		ChargeID:  o.ChargeID(),
		Status:    o.Status().String(),
		Timeline:  timeline,
		CreatedAt: o.CreatedAt(),
	}, nil
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	request, err := restoreRequest(dto)
	if err != nil {
		return nil, err
	}

	price, err := restorePrice(dto.Price)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	timeline, err := DecodeTimeline(dto.Timeline)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, accountID, request, price, dto.ChargeID, status, timeline, dto.CreatedAt), nil
}

func restoreRequest(dto OrderDTO) (quote.Request, error) {
	category, categoryErr := quote.ParseCategory(dto.Category)
	weight, weightErr := quote.NewWeightFromGrams(dto.WeightGrams)
	kind, kindErr := quote.ParseSchedulingType(dto.SchedulingType)
	if err := errors.Join(categoryErr, weightErr, kindErr); err != nil {
		return quote.Request{}, err
	}

	scheduling := quote.InstantScheduling()
	if kind == quote.Scheduled && dto.PickupAt != nil && dto.DropoffAt != nil {
		scheduling = quote.RestoreScheduling(kind, *dto.PickupAt, *dto.DropoffAt)
	}

	return quote.NewRequest(dto.PickupAddress, dto.DeliveryAddress, category, weight, scheduling)
}

func restorePrice(dto PriceDTO) (quote.Breakdown, error) {
	amounts := []int64{
		dto.BaseFee, dto.CategoryFee, dto.WeightSurcharge, dto.DistanceFee, dto.ScheduledSurcharge, dto.Total,
	}
	money := make([]kernel.Money, len(amounts))
	for i, minor := range amounts {
		m, err := kernel.NewMoney(minor, dto.Currency)
		if err != nil {
			return quote.Breakdown{}, err
		}
		money[i] = m
	}

	return quote.Breakdown{
		TariffVersion:      dto.TariffVersion,
		PremiumCategory:    dto.PremiumCategory,
		DistanceMeters:     dto.DistanceMeters,
		BaseFee:            money[0],
		CategoryFee:        money[1],
		WeightSurcharge:    money[2],
		DistanceFee:        money[3],
		ScheduledSurcharge: money[4],
		Total:              money[5],
	}, nil
}

// EncodeTimeline renders events as the JSON stored in the timeline column.
func EncodeTimeline(events []order.Event) (datatypes.JSON, error) {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventDTO{Status: e.Status.String(), At: e.At.UTC(), Note: e.Note})
	}
	raw, err := json.Marshal(dtos)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeTimeline parses the timeline column. The read-side queries use it too.
func DecodeTimeline(raw []byte) ([]order.Event, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var dtos []EventDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}
	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		events = append(events, order.Event{Status: status, At: dto.At.UTC(), Note: dto.Note})
	}
	return events, nil
}
