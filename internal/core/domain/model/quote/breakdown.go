package quote

import "parcelquote/internal/core/domain/model/kernel"

// Breakdown is a priced quote: one line per fee rule plus their sum. It is
// produced by the pricing service and snapshotted onto an order at checkout.
type Breakdown struct {
	TariffVersion   string
	PremiumCategory bool
	DistanceMeters  int

	BaseFee            kernel.Money
	CategoryFee        kernel.Money
	WeightSurcharge    kernel.Money
	DistanceFee        kernel.Money
	ScheduledSurcharge kernel.Money
	Total              kernel.Money
}

// Validate checks that every line is constructed.
func (b Breakdown) Validate() error {
	for _, m := range []kernel.Money{
		b.BaseFee, b.CategoryFee, b.WeightSurcharge, b.DistanceFee, b.ScheduledSurcharge, b.Total,
	} {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
