package commands

import (
	"context"
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/core/domain/services"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const geocoderService = "geocoder"

// QuoteResult is a priced quote together with the resolved coordinates.
type QuoteResult struct {
	Request   quote.Request
	Breakdown quote.Breakdown
	Pickup    kernel.GeoPoint
	Delivery  kernel.GeoPoint
}

// RequestQuoteCommandHandler geocodes both addresses concurrently, measures the
// distance between them and prices the request. Nothing is persisted.
//
// Example:
//
//	handler := NewRequestQuoteCommandHandler(geocoder, calculator, 3*time.Second)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrOutOfServiceArea):
//	    // too far
//	case errors.Is(err, errs.ErrServiceTimeout):
//	    // geocoder too slow, try again
//	}
//	fmt.Println(result.Breakdown.Total)
type RequestQuoteCommandHandler struct {
	geocoder   ports.Geocoder
	calculator *services.PriceCalculator
	timeout    time.Duration
}

// NewRequestQuoteCommandHandler creates the handler. A non-positive timeout
// leaves the caller's deadline in charge.
func NewRequestQuoteCommandHandler(
	geocoder ports.Geocoder,
	calculator *services.PriceCalculator,
	timeout time.Duration,
) RequestQuoteCommandHandler {
	return RequestQuoteCommandHandler{geocoder: geocoder, calculator: calculator, timeout: timeout}
}

// Handle prices cmd. Geocoding failures keep their error kind; an address the
// geocoder cannot match is reported as an invalid address.
func (h RequestQuoteCommandHandler) Handle(ctx context.Context, cmd RequestQuoteCommand) (QuoteResult, error) {
	if err := cmd.Validate(); err != nil {
		return QuoteResult{}, err
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	req := cmd.Request()
	var pickup, delivery kernel.GeoPoint

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := h.geocode(gctx, "pickupAddress", req.PickupAddress())
		pickup = p
		return err
	})
	g.Go(func() error {
		p, err := h.geocode(gctx, "deliveryAddress", req.DeliveryAddress())
		delivery = p
		return err
	})
	if err := g.Wait(); err != nil {
		return QuoteResult{}, err
	}

	distance, err := pickup.DistanceTo(delivery)
	if err != nil {
		return QuoteResult{}, err
	}

	breakdown, err := h.calculator.Price(req, distance)
	if err != nil {
		return QuoteResult{}, err
	}

	return QuoteResult{Request: req, Breakdown: breakdown, Pickup: pickup, Delivery: delivery}, nil
}

func (h RequestQuoteCommandHandler) geocode(ctx context.Context, param, address string) (kernel.GeoPoint, error) {
	point, err := h.geocoder.Geocode(ctx, address)
	switch {
	case err == nil:
		return point, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return kernel.GeoPoint{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	case ctx.Err() != nil:
		return kernel.GeoPoint{}, errs.ClassifyContextError(geocoderService, err)
	}
	return kernel.GeoPoint{}, err
}
