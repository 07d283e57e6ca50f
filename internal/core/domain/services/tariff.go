package services

import (
	"errors"
	"fmt"
	"regexp"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
)

// DefaultTariffVersion labels the built-in tariff.
const DefaultTariffVersion = "gb-2026.1"

var tariffVersion = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,31}$`)

// Tariff is the fee table used to price a delivery. All amounts share one
// currency. Thresholds are in grams and metres; rates are per kilogram and per
// kilometre and are applied pro rata.
type Tariff struct {
	Version string

	BaseFee             kernel.Money
	StandardCategoryFee kernel.Money
	PremiumCategoryFee  kernel.Money

	WeightFreeGrams int64
	WeightRatePerKg kernel.Money

	DistanceFreeMeters int64
	DistanceRatePerKm  kernel.Money
	MaxDistanceMeters  int64

	ScheduledSurcharge kernel.Money
}

// DefaultTariff returns the canonical GBP tariff:
//
//	base fee                 £6.00
//	category fee             £1.50 standard, £3.50 medical and electronics
//	weight surcharge         £1.50/kg above 2 kg
//	distance fee             £0.80/km above 3 km, service area up to 50 km
//	scheduled surcharge      £2.50
func DefaultTariff() Tariff {
	return Tariff{
		Version:             DefaultTariffVersion,
		BaseFee:             kernel.GBP(600),
		StandardCategoryFee: kernel.GBP(150),
		PremiumCategoryFee:  kernel.GBP(350),
		WeightFreeGrams:     2000,
		WeightRatePerKg:     kernel.GBP(150),
		DistanceFreeMeters:  3000,
		DistanceRatePerKm:   kernel.GBP(80),
		MaxDistanceMeters:   50000,
		ScheduledSurcharge:  kernel.GBP(250),
	}
}

// Currency returns the currency of the base fee.
func (t Tariff) Currency() string {
	return t.BaseFee.Currency()
}

// Validate checks the version label, that every amount is constructed,
// non-negative and in the base fee currency, and that the premium category
// fee is not below the standard one.
func (t Tariff) Validate() error {
	var versionErr error
	if t.Version == "" {
		versionErr = errs.NewValueIsRequiredError("tariff version")
	} else if !tariffVersion.MatchString(t.Version) {
		versionErr = errs.NewVersionIsInvalidErrorWithCause("tariff version",
			fmt.Errorf("%q must match %s", t.Version, tariffVersion))
	}

	amounts := []struct {
		name  string
		value kernel.Money
	}{
		{"baseFee", t.BaseFee},
		{"standardCategoryFee", t.StandardCategoryFee},
		{"premiumCategoryFee", t.PremiumCategoryFee},
		{"weightRatePerKg", t.WeightRatePerKg},
		{"distanceRatePerKm", t.DistanceRatePerKm},
		{"scheduledSurcharge", t.ScheduledSurcharge},
	}

	joined := []error{versionErr}
	for _, a := range amounts {
		joined = append(joined, t.checkAmount(a.name, a.value))
	}

	if t.WeightFreeGrams < 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("weightFreeGrams", t.WeightFreeGrams, 0, "unbounded"))
	}
	if t.DistanceFreeMeters < 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("distanceFreeMeters", t.DistanceFreeMeters, 0, "unbounded"))
	}
	if t.MaxDistanceMeters <= 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("maxDistanceMeters", t.MaxDistanceMeters, 1, "unbounded"))
	}

	if err := errors.Join(joined...); err != nil {
		return err
	}

	if t.PremiumCategoryFee.Minor() < t.StandardCategoryFee.Minor() {
		return errs.NewValueIsInvalidErrorWithCause("premiumCategoryFee",
			fmt.Errorf("%s is below standard fee %s", t.PremiumCategoryFee, t.StandardCategoryFee))
	}
	return nil
}

func (t Tariff) checkAmount(name string, m kernel.Money) error {
	if err := m.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	if m.IsNegative() {
		return errs.NewValueIsOutOfRangeError(name, m.Decimal(), "0.00", "unbounded")
	}
	if t.BaseFee.Validate() == nil && m.Currency() != t.BaseFee.Currency() {
		return errs.NewValueIsInvalidErrorWithCause(name, kernel.ErrCurrencyMismatch)
	}
	return nil
}
