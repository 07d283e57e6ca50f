package quote

import (
	"fmt"
	"math"

	"parcelquote/internal/pkg/errs"
)

// MaxWeightGrams caps declared weight. Anything heavier is freight, not a parcel.
const MaxWeightGrams = 1_000_000

// Weight is a non-negative parcel weight in whole grams. The zero value is
// a valid weightless parcel, which is what an omitted weight means.
type Weight struct {
	grams int64
}

// NewWeightFromKg converts kilograms to grams, rounding half away from zero.
// Any negative input is rejected, including one that would round to zero.
func NewWeightFromKg(kg float64) (Weight, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not a number", kg))
	}
	if kg < 0 {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight in kg", kg, 0, float64(MaxWeightGrams)/1000)
	}
	return NewWeightFromGrams(int64(math.Round(kg * 1000)))
}

// NewWeightFromGrams validates grams against [0..MaxWeightGrams].
func NewWeightFromGrams(grams int64) (Weight, error) {
	if grams < 0 || grams > MaxWeightGrams {
		return Weight{}, errs.NewValueIsOutOfRangeError("weight in grams", grams, 0, MaxWeightGrams)
	}
	return Weight{grams: grams}, nil
}

// Grams returns the weight in grams.
func (w Weight) Grams() int64 {
	return w.grams
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return float64(w.grams) / 1000
}

func (w Weight) String() string {
	return fmt.Sprintf("%.3f kg", w.Kg())
}
