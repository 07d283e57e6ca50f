package kernel

import (
	"errors"
	"fmt"
	"regexp"

	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

// CurrencyGBP is the currency of the canonical tariff.
const CurrencyGBP = "GBP"

var (
	// ErrMoneyIsNotConstructed is returned when a Money value was built without NewMoney or GBP.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or GBP")

	// ErrCurrencyMismatch is returned when arithmetic mixes currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Money is an amount in integer minor units (pence for GBP) tagged with an
// ISO 4217 currency code. Quote prices are additive sums of fees, so integer
// minor units keep every total exact; rounding happens only in MulRatio.
//
// Example:
//
//	base := kernel.GBP(600)             // £6.00
//	fee := kernel.GBP(150)              // £1.50
//	total, err := base.Add(fee)         // £7.50
//	fmt.Println(total.Decimal())        // "7.50"
type Money struct { //nolint:recvcheck //using for validation
	minor    int64
	currency string
	guard    guard.ConstructorGuard
}

// NewMoney creates an amount in the given currency. The currency must be a
// three-letter upper-case code.
func NewMoney(minor int64, currency string) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard(), minor: minor}
	if err := m.setCurrency(currency); err != nil {
		return Money{}, err
	}
	return m, nil
}

// GBP returns an amount in pence.
func GBP(pence int64) Money {
	return Money{minor: pence, currency: CurrencyGBP, guard: guard.NewConstructorGuard()}
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 {
	return m.minor
}

// Currency returns the ISO 4217 code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.minor == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.minor < 0
}

// Add returns m + other. Both values must be constructed and share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{minor: m.minor + other.minor, currency: m.currency, guard: m.guard}, nil
}

// Sub returns m - other. Both values must be constructed and share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{minor: m.minor - other.minor, currency: m.currency, guard: m.guard}, nil
}

// MulRatio returns m * num / den rounded half away from zero to the nearest
// minor unit. It is used for per-gram and per-metre rates: a £1.50/kg rate
// applied to 2500 g is GBP(150).MulRatio(2500, 1000) == GBP(375).
// A non-positive den yields the zero amount.
func (m Money) MulRatio(num, den int64) Money {
	if den <= 0 {
		return Money{currency: m.currency, guard: m.guard}
	}
	product := m.minor * num
	half := den / 2
	var rounded int64
	if product >= 0 {
		rounded = (product + half) / den
	} else {
		rounded = -((-product + half) / den)
	}
	return Money{minor: rounded, currency: m.currency, guard: m.guard}
}

// Compare returns -1, 0 or 1. Both values must share a currency.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.minor < other.minor:
		return -1, nil
	case m.minor > other.minor:
		return 1, nil
	}
	return 0, nil
}

// IsEqual reports whether amount and currency match.
func (m Money) IsEqual(other Money) bool {
	return m.minor == other.minor && m.currency == other.currency
}

// Decimal renders the amount with two fractional digits, e.g. "12.50" or "-0.05".
func (m Money) Decimal() string {
	sign := ""
	v := m.minor
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// String implements fmt.Stringer, e.g. "12.50 GBP".
func (m Money) String() string {
	return m.Decimal() + " " + m.currency
}

func (m Money) sameCurrency(other Money) error {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return err
	}
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	if !currencyCode.MatchString(currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	m.currency = currency
	return nil
}
