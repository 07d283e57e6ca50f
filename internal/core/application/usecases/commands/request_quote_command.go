package commands

import (
	"errors"
	"time"

	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/pkg/guard"
)

var ErrRequestQuoteCommandIsNotConstructed = errors.New(
	"RequestQuoteCommand must be created via NewRequestQuoteCommand constructor",
)

// QuoteInput is the raw form of a quote request as it arrives from a client.
// WeightKg nil means no weight was declared.
type QuoteInput struct {
	PickupAddress   string
	DeliveryAddress string
	Category        string
	WeightKg        *float64
	SchedulingType  string
	PickupAt        *time.Time
	DropoffAt       *time.Time
}

// RequestQuoteCommand asks for the price of a prospective delivery.
//
// Example:
//
//	weight := 4.0
//	cmd, err := NewRequestQuoteCommand(QuoteInput{
//	    PickupAddress:   "1 Briggate, Leeds",
//	    DeliveryAddress: "2 Stonegate, York",
//	    Category:        "electronics",
//	    WeightKg:        &weight,
//	}, clock.Now())
type RequestQuoteCommand struct { //nolint:recvcheck //using for validation
	request quote.Request

	guard guard.ConstructorGuard
}

// NewRequestQuoteCommand parses and validates in against now. Every invalid
// field is reported in the returned error.
func NewRequestQuoteCommand(in QuoteInput, now time.Time) (RequestQuoteCommand, error) {
	category, categoryErr := quote.ParseCategory(in.Category)
	weight, weightErr := parseWeight(in.WeightKg)
	scheduling, schedulingErr := parseScheduling(in, now)

	if err := errors.Join(categoryErr, weightErr, schedulingErr); err != nil {
		_, addressErr := quote.NewRequest(in.PickupAddress, in.DeliveryAddress,
			quote.Other, quote.Weight{}, quote.InstantScheduling())
		return RequestQuoteCommand{}, errors.Join(addressErr, err)
	}

	request, err := quote.NewRequest(in.PickupAddress, in.DeliveryAddress, category, weight, scheduling)
	if err != nil {
		return RequestQuoteCommand{}, err
	}

	return RequestQuoteCommand{request: request, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRequestQuoteCommandIsNotConstructed)
}

// Request returns the validated quote request.
func (c RequestQuoteCommand) Request() quote.Request {
	return c.request
}

func parseWeight(kg *float64) (quote.Weight, error) {
	if kg == nil {
		return quote.Weight{}, nil
	}
	return quote.NewWeightFromKg(*kg)
}

func parseScheduling(in QuoteInput, now time.Time) (quote.Scheduling, error) {
	kind, err := quote.ParseSchedulingType(in.SchedulingType)
	if err != nil {
		return quote.Scheduling{}, err
	}
	return quote.NewScheduling(kind, in.PickupAt, in.DropoffAt, now)
}
