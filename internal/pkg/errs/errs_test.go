package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"parcelquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("accountId", "123")

		assert.Equal(t, "accountId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("accountId", "123", cause)

		assert.Equal(t, "accountId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: accountId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("distanceKm", 150, 0, 120)

		assert.Equal(t, "distanceKm", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is distanceKm, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("weight", -5, 0, 100, cause)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is weight, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("pickupAddress")

		assert.Equal(t, "pickupAddress", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: pickupAddress", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank after trim")
		err := errs.NewValueIsRequiredErrorWithCause("pickupAddress", cause)

		assert.Equal(t, "pickupAddress", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: pickupAddress (cause: blank after trim)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	t.Run("NewVersionIsInvalidError", func(t *testing.T) {
		err := errs.NewVersionIsInvalidError("tariff version")

		assert.Equal(t, "tariff version", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "version is invalid: tariff version", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})

	t.Run("NewVersionIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("empty label")
		err := errs.NewVersionIsInvalidErrorWithCause("tariff version", cause)

		assert.Equal(t, "tariff version", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "version is invalid: tariff version (cause: empty label)", err.Error())
		assert.Equal(t, errs.ErrVersionIsInvalid, err.Unwrap())
	})
}

func TestExternalServiceError(t *testing.T) {
	t.Run("matches sentinel of its kind", func(t *testing.T) {
		cause := errors.New("card declined")
		err := errs.NewExternalServiceError("payment", errs.KindRejected, cause)

		require.ErrorIs(t, err, errs.ErrExternalService)
		require.ErrorIs(t, err, errs.ErrServiceRejected)
		require.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, errs.ErrServiceTimeout)
		assert.Equal(t,
			"external service failed: payment (rejected) (cause: card declined)",
			err.Error())
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewExternalServiceError("geocoder", errs.KindUnavailable, nil)

		require.ErrorIs(t, err, errs.ErrServiceUnavailable)
		assert.Equal(t, "external service failed: geocoder (unavailable)", err.Error())
	})

	t.Run("errors.As recovers details through wrapping", func(t *testing.T) {
		err := fmt.Errorf("quote: %w", errs.NewExternalServiceError("geocoder", errs.KindTimeout, nil))

		var svcErr *errs.ExternalServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "geocoder", svcErr.Service)
		assert.Equal(t, errs.KindTimeout, svcErr.Kind)
	})
}

func TestClassifyContextError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, target: errs.ErrServiceTimeout},
		{name: "canceled", err: context.Canceled, target: errs.ErrServiceTimeout},
		{name: "wrapped deadline", err: fmt.Errorf("dial: %w", context.DeadlineExceeded), target: errs.ErrServiceTimeout},
		{name: "other failure", err: errors.New("connection refused"), target: errs.ErrServiceUnavailable},
		{
			name:   "already classified",
			err:    errs.NewExternalServiceError("payment", errs.KindRejected, nil),
			target: errs.ErrServiceRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errs.ClassifyContextError("geocoder", tt.err)
			require.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, errs.ClassifyContextError("geocoder", nil))
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrVersionIsInvalid)
		require.Error(t, errs.ErrUnauthorized)
		require.Error(t, errs.ErrForbidden)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("accountId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("distanceKm", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("pickupAddress")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		versionInvalidErr := errs.NewVersionIsInvalidErrorWithCause("version", errors.New("test"))
		require.ErrorIs(t, versionInvalidErr, errs.ErrVersionIsInvalid)
	})
}
