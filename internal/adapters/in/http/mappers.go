package http

import (
	"time"

	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/application/usecases/queries"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/generated/servers"
)

const gramsPerKg = 1000.0

func quoteInput(body servers.QuoteRequest) commands.QuoteInput {
	schedulingType := ""
	if body.SchedulingType != nil {
		schedulingType = string(*body.SchedulingType)
	}
	return commands.QuoteInput{
		PickupAddress:   body.PickupAddress,
		DeliveryAddress: body.DeliveryAddress,
		Category:        body.Category,
		WeightKg:        body.WeightKg,
		SchedulingType:  schedulingType,
		PickupAt:        body.PickupAt,
		DropoffAt:       body.DropoffAt,
	}
}

func cardFromAPI(card servers.Card) ports.Card {
	holder := ""
	if card.Holder != nil {
		holder = *card.Holder
	}
	return ports.Card{
		Number:   card.Number,
		ExpMonth: card.ExpMonth,
		ExpYear:  card.ExpYear,
		CVC:      card.Cvc,
		Holder:   holder,
	}
}

func moneyToAPI(m kernel.Money) servers.Money {
	return servers.Money{
		Amount:   m.Decimal(),
		Currency: m.Currency(),
		Minor:    m.Minor(),
	}
}

func breakdownToAPI(b quote.Breakdown) servers.PriceBreakdown {
	return servers.PriceBreakdown{
		TariffVersion:      b.TariffVersion,
		PremiumCategory:    b.PremiumCategory,
		DistanceMeters:     b.DistanceMeters,
		BaseFee:            moneyToAPI(b.BaseFee),
		CategoryFee:        moneyToAPI(b.CategoryFee),
		WeightSurcharge:    moneyToAPI(b.WeightSurcharge),
		DistanceFee:        moneyToAPI(b.DistanceFee),
		ScheduledSurcharge: moneyToAPI(b.ScheduledSurcharge),
		Total:              moneyToAPI(b.Total),
	}
}

func pointToAPI(p kernel.GeoPoint) servers.GeoPoint {
	return servers.GeoPoint{Lat: p.Lat(), Lon: p.Lon()}
}

// window returns the pickup and dropoff times of a scheduled request, nil for
// instant ones.
func window(s quote.Scheduling) (*time.Time, *time.Time) {
	if !s.IsScheduled() {
		return nil, nil
	}
	pickup, dropoff := s.PickupAt(), s.DropoffAt()
	return &pickup, &dropoff
}

func quoteToAPI(result commands.QuoteResult) servers.Quote {
	req := result.Request
	pickupAt, dropoffAt := window(req.Scheduling())
	return servers.Quote{
		PickupAddress:   req.PickupAddress(),
		DeliveryAddress: req.DeliveryAddress(),
		Category:        servers.ProductCategory(req.Category()),
		WeightKg:        req.Weight().Kg(),
		SchedulingType:  servers.SchedulingType(req.Scheduling().Type()),
		PickupAt:        pickupAt,
		DropoffAt:       dropoffAt,
		Pickup:          pointToAPI(result.Pickup),
		Delivery:        pointToAPI(result.Delivery),
		Price:           breakdownToAPI(result.Breakdown),
	}
}

func timelineToAPI(events []order.Event) []servers.TimelineEvent {
	out := make([]servers.TimelineEvent, len(events))
	for i, e := range events {
		out[i] = servers.TimelineEvent{Status: e.Status.String(), At: e.At, Note: optional(e.Note)}
	}
	return out
}

func orderToAPI(o *order.Order) servers.Order {
	req := o.Request()
	pickupAt, dropoffAt := window(req.Scheduling())
	return servers.Order{
		Id:              o.ID().Bytes(),
		AccountId:       o.AccountID().Bytes(),
		PickupAddress:   req.PickupAddress(),
		DeliveryAddress: req.DeliveryAddress(),
		Category:        servers.ProductCategory(req.Category()),
		WeightKg:        req.Weight().Kg(),
		SchedulingType:  servers.SchedulingType(req.Scheduling().Type()),
		PickupAt:        pickupAt,
		DropoffAt:       dropoffAt,
		Price:           breakdownToAPI(o.Price()),
		ChargeId:        o.ChargeID(),
		Status:          o.Status().String(),
		Timeline:        timelineToAPI(o.Timeline()),
		CreatedAt:       o.CreatedAt(),
	}
}

func orderViewToAPI(v queries.GetOrderQueryResponse) servers.Order {
	timeline := make([]servers.TimelineEvent, len(v.Timeline))
	for i, e := range v.Timeline {
		timeline[i] = servers.TimelineEvent{Status: e.Status, At: e.At, Note: optional(e.Note)}
	}
	return servers.Order{
		Id:              v.ID.Bytes(),
		AccountId:       v.AccountID.Bytes(),
		PickupAddress:   v.PickupAddress,
		DeliveryAddress: v.DeliveryAddress,
		Category:        servers.ProductCategory(v.Category),
		WeightKg:        float64(v.WeightGrams) / gramsPerKg,
		SchedulingType:  servers.SchedulingType(v.SchedulingType),
		PickupAt:        v.PickupAt,
		DropoffAt:       v.DropoffAt,
		Price: servers.PriceBreakdown{
			TariffVersion:      v.Price.TariffVersion,
			PremiumCategory:    v.Price.PremiumCategory,
			DistanceMeters:     v.Price.DistanceMeters,
			BaseFee:            moneyToAPI(v.Price.BaseFee),
			CategoryFee:        moneyToAPI(v.Price.CategoryFee),
			WeightSurcharge:    moneyToAPI(v.Price.WeightSurcharge),
			DistanceFee:        moneyToAPI(v.Price.DistanceFee),
			ScheduledSurcharge: moneyToAPI(v.Price.ScheduledSurcharge),
			Total:              moneyToAPI(v.Price.Total),
		},
		ChargeId:  v.ChargeID,
		Status:    v.Status,
		Timeline:  timeline,
		CreatedAt: v.CreatedAt,
	}
}

func summaryToAPI(s queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:              s.ID.Bytes(),
		PickupAddress:   s.PickupAddress,
		DeliveryAddress: s.DeliveryAddress,
		Category:        servers.ProductCategory(s.Category),
		SchedulingType:  servers.SchedulingType(s.SchedulingType),
		Status:          s.Status,
		Total:           moneyToAPI(s.Total),
		CreatedAt:       s.CreatedAt,
	}
}

func chargeToAPI(c ports.Charge) servers.Charge {
	return servers.Charge{
		Id:         c.ID,
		Amount:     moneyToAPI(c.Amount),
		CardLast4:  c.CardLast4,
		CapturedAt: c.CapturedAt,
	}
}

func refundToAPI(r ports.Refund) servers.Refund {
	return servers.Refund{
		Id:         r.ID,
		ChargeId:   r.ChargeID,
		Amount:     moneyToAPI(r.Amount),
		RefundedAt: r.RefundedAt,
	}
}

func tariffToAPI(t services.Tariff) servers.Tariff {
	premium := make([]servers.ProductCategory, 0, 2)
	for _, c := range quote.Categories() {
		if c.IsPremium() {
			premium = append(premium, servers.ProductCategory(c))
		}
	}
	return servers.Tariff{
		Version:             t.Version,
		Currency:            t.Currency(),
		BaseFee:             moneyToAPI(t.BaseFee),
		StandardCategoryFee: moneyToAPI(t.StandardCategoryFee),
		PremiumCategoryFee:  moneyToAPI(t.PremiumCategoryFee),
		PremiumCategories:   premium,
		WeightFreeKg:        float64(t.WeightFreeGrams) / gramsPerKg,
		WeightRatePerKg:     moneyToAPI(t.WeightRatePerKg),
		DistanceFreeKm:      float64(t.DistanceFreeMeters) / 1000,
		DistanceRatePerKm:   moneyToAPI(t.DistanceRatePerKm),
		MaxDistanceKm:       float64(t.MaxDistanceMeters) / 1000,
		ScheduledSurcharge:  moneyToAPI(t.ScheduledSurcharge),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
