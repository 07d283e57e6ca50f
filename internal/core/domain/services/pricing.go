package services

import (
	"errors"
	"fmt"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/pkg/errs"
)

// ErrOutOfServiceArea is matched by OutOfServiceAreaError.
var ErrOutOfServiceArea = errors.New("delivery is outside the service area")

// OutOfServiceAreaError reports a distance beyond Tariff.MaxDistanceMeters.
// It matches both ErrOutOfServiceArea and errs.ErrValueIsOutOfRange.
type OutOfServiceAreaError struct {
	DistanceMeters    int
	MaxDistanceMeters int64
}

func (e *OutOfServiceAreaError) Error() string {
	return fmt.Sprintf("%s: %d m exceeds %d m", ErrOutOfServiceArea, e.DistanceMeters, e.MaxDistanceMeters)
}

func (e *OutOfServiceAreaError) Unwrap() []error {
	return []error{ErrOutOfServiceArea, errs.ErrValueIsOutOfRange}
}

// Calculate prices req under tariff for a trip of distanceMeters.
//
//	total = base + category + weight surcharge + distance fee + scheduled surcharge
//
// Weight and distance above their free allowances are charged pro rata per gram
// and per metre, rounded half up to the minor unit. Calculate does not enforce
// the service area; PriceCalculator does.
//
// Example:
//
//	w, _ := quote.NewWeightFromKg(4)
//	req, _ := quote.NewRequest("Leeds", "York", quote.Electronics, w, scheduled)
//	b, _ := services.Calculate(services.DefaultTariff(), req, 0)
//	b.Total.Decimal() // "15.00" = 6.00 + 3.50 + 3.00 + 0 + 2.50
func Calculate(tariff Tariff, req quote.Request, distanceMeters int) (quote.Breakdown, error) {
	if err := errors.Join(tariff.Validate(), req.Validate()); err != nil {
		return quote.Breakdown{}, err
	}
	if distanceMeters < 0 {
		return quote.Breakdown{}, errs.NewValueIsOutOfRangeError("distanceMeters", distanceMeters, 0, tariff.MaxDistanceMeters)
	}

	b := quote.Breakdown{
		TariffVersion:   tariff.Version,
		PremiumCategory: req.Category().IsPremium(),
		DistanceMeters:  distanceMeters,
		BaseFee:         tariff.BaseFee,
		CategoryFee:     tariff.StandardCategoryFee,
		WeightSurcharge: tariff.WeightRatePerKg.MulRatio(
			excess(req.Weight().Grams(), tariff.WeightFreeGrams), 1000),
		DistanceFee: tariff.DistanceRatePerKm.MulRatio(
			excess(int64(distanceMeters), tariff.DistanceFreeMeters), 1000),
		ScheduledSurcharge: tariff.ScheduledSurcharge.MulRatio(0, 1),
	}
	if b.PremiumCategory {
		b.CategoryFee = tariff.PremiumCategoryFee
	}
	if req.Scheduling().IsScheduled() {
		b.ScheduledSurcharge = tariff.ScheduledSurcharge
	}

	total := tariff.BaseFee
	for _, line := range []kernel.Money{b.CategoryFee, b.WeightSurcharge, b.DistanceFee, b.ScheduledSurcharge} {
		var err error
		if total, err = total.Add(line); err != nil {
			return quote.Breakdown{}, err
		}
	}
	b.Total = total

	return b, nil
}

func excess(value, allowance int64) int64 {
	if value <= allowance {
		return 0
	}
	return value - allowance
}

// PriceCalculator prices requests against one validated tariff and rejects
// trips outside the service area.
type PriceCalculator struct {
	tariff Tariff
}

// NewPriceCalculator validates tariff and binds it to a calculator.
func NewPriceCalculator(tariff Tariff) (*PriceCalculator, error) {
	if err := tariff.Validate(); err != nil {
		return nil, err
	}
	return &PriceCalculator{tariff: tariff}, nil
}

// Tariff returns the bound tariff.
func (c *PriceCalculator) Tariff() Tariff {
	return c.tariff
}

// Price returns an OutOfServiceAreaError when distanceMeters exceeds the
// tariff maximum and the quote.Breakdown otherwise.
func (c *PriceCalculator) Price(req quote.Request, distanceMeters int) (quote.Breakdown, error) {
	if int64(distanceMeters) > c.tariff.MaxDistanceMeters {
		return quote.Breakdown{}, &OutOfServiceAreaError{
			DistanceMeters:    distanceMeters,
			MaxDistanceMeters: c.tariff.MaxDistanceMeters,
		}
	}
	return Calculate(c.tariff, req, distanceMeters)
}
