package quote_test

import (
	"math"
	"testing"

	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightFromKg(t *testing.T) {
	tests := []struct {
		name   string
		kg     float64
		grams  int64
		target error
	}{
		{name: "zero", kg: 0, grams: 0},
		{name: "whole kilograms", kg: 4, grams: 4000},
		{name: "rounds to nearest gram", kg: 2.0004, grams: 2000},
		{name: "half gram rounds up", kg: 0.0005, grams: 1},
		{name: "negative", kg: -0.5, target: errs.ErrValueIsOutOfRange},
		{name: "negative below half a gram", kg: -0.0004, target: errs.ErrValueIsOutOfRange},
		{name: "negative zero", kg: math.Copysign(0, -1), grams: 0},
		{name: "too heavy", kg: 1000.001, target: errs.ErrValueIsOutOfRange},
		{name: "nan", kg: math.NaN(), target: errs.ErrValueIsInvalid},
		{name: "inf", kg: math.Inf(1), target: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := quote.NewWeightFromKg(tt.kg)
			if tt.target != nil {
				require.ErrorIs(t, err, tt.target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.grams, w.Grams())
		})
	}
}

func TestWeight_Kg(t *testing.T) {
	w, err := quote.NewWeightFromGrams(2500)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, w.Kg(), 1e-9)
	assert.Equal(t, "2.500 kg", w.String())
}
