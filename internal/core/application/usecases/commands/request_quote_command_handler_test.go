package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parcelquote/internal/core/application/usecases/commands"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuoteCommand(t *testing.T, category string) commands.RequestQuoteCommand {
	t.Helper()
	weight := 4.0
	cmd, err := commands.NewRequestQuoteCommand(commands.QuoteInput{
		PickupAddress:   "Leeds",
		DeliveryAddress: "York",
		Category:        category,
		WeightKg:        &weight,
	}, testNow)
	require.NoError(t, err)
	return cmd
}

func newCalculator(t *testing.T) *services.PriceCalculator {
	t.Helper()
	calc, err := services.NewPriceCalculator(services.DefaultTariff())
	require.NoError(t, err)
	return calc
}

func TestRequestQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	leeds := mustPoint(53.7997, -1.5492)
	york := mustPoint(53.9590, -1.0815)

	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Leeds").Return(leeds, nil).Once()
	geocoder.On("Geocode", mock.Anything, "York").Return(york, nil).Once()

	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), time.Second)
	result, err := handler.Handle(ctx, newQuoteCommand(t, "documents"))

	require.NoError(t, err)
	expectedDistance, _ := leeds.DistanceTo(york)
	b := result.Breakdown
	assert.Equal(t, expectedDistance, b.DistanceMeters)
	assert.Greater(t, b.DistanceFee.Minor(), int64(0))
	assert.Equal(t, int64(600+150+300)+b.DistanceFee.Minor(), b.Total.Minor())
	assert.Equal(t, leeds, result.Pickup)
	assert.Equal(t, york, result.Delivery)
	geocoder.AssertExpectations(t)
}

func TestRequestQuoteCommandHandler_Handle_ValidationError(t *testing.T) {
	geocoder := new(MockGeocoder)
	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), time.Second)

	_, err := handler.Handle(t.Context(), commands.RequestQuoteCommand{})

	require.ErrorIs(t, err, commands.ErrRequestQuoteCommandIsNotConstructed)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestRequestQuoteCommandHandler_Handle_OutOfServiceArea(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Leeds").Return(mustPoint(53.7997, -1.5492), nil)
	geocoder.On("Geocode", mock.Anything, "York").Return(mustPoint(51.5074, -0.1278), nil)

	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), time.Second)
	_, err := handler.Handle(t.Context(), newQuoteCommand(t, "gifts"))

	require.ErrorIs(t, err, services.ErrOutOfServiceArea)
}

func TestRequestQuoteCommandHandler_Handle_UnknownAddress(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, "Leeds").Return(mustPoint(53.7997, -1.5492), nil)
	geocoder.On("Geocode", mock.Anything, "York").
		Return(kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", "York"))

	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), time.Second)
	_, err := handler.Handle(t.Context(), newQuoteCommand(t, "gifts"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "deliveryAddress")
}

func TestRequestQuoteCommandHandler_Handle_GeocoderTimeout(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(kernel.GeoPoint{}, context.DeadlineExceeded)

	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), 20*time.Millisecond)
	_, err := handler.Handle(t.Context(), newQuoteCommand(t, "gifts"))

	require.ErrorIs(t, err, errs.ErrServiceTimeout)
	require.ErrorIs(t, err, errs.ErrExternalService)
}

func TestRequestQuoteCommandHandler_Handle_GeocoderUnavailableKeepsKind(t *testing.T) {
	unavailable := errs.NewExternalServiceError("geocoder", errs.KindUnavailable, errors.New("502 bad gateway"))
	geocoder := new(MockGeocoder)
	geocoder.On("Geocode", mock.Anything, mock.Anything).Return(kernel.GeoPoint{}, unavailable)

	handler := commands.NewRequestQuoteCommandHandler(geocoder, newCalculator(t), time.Second)
	_, err := handler.Handle(t.Context(), newQuoteCommand(t, "gifts"))

	require.ErrorIs(t, err, errs.ErrServiceUnavailable)
	require.NotErrorIs(t, err, errs.ErrServiceTimeout)
}
