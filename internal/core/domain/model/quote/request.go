package quote

import (
	"errors"
	"strings"

	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

// MaxAddressLength bounds free-text addresses.
const MaxAddressLength = 256

// ErrRequestIsNotConstructed is returned for a Request built without NewRequest.
var ErrRequestIsNotConstructed = errs.NewValueIsRequiredError("quote request must be created via NewRequest")

// Request is everything the pricing function needs to know about a prospective
// delivery except the distance, which comes from the geocoder.
type Request struct { //nolint:recvcheck //using for validation
	pickupAddress   string
	deliveryAddress string
	category        Category
	weight          Weight
	scheduling      Scheduling
	guard           guard.ConstructorGuard
}

// NewRequest validates every field and joins all failures into one error.
//
// Example:
//
//	w, _ := quote.NewWeightFromKg(4)
//	req, err := quote.NewRequest("1 King St, Leeds", "10 Queen St, York",
//	    quote.Electronics, w, quote.InstantScheduling())
func NewRequest(
	pickupAddress, deliveryAddress string,
	category Category,
	weight Weight,
	scheduling Scheduling,
) (Request, error) {
	r := Request{weight: weight, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		r.setPickupAddress(pickupAddress),
		r.setDeliveryAddress(deliveryAddress),
		r.setCategory(category),
		r.setScheduling(scheduling),
	); err != nil {
		return Request{}, err
	}

	return r, nil
}

// Validate returns ErrRequestIsNotConstructed for the zero value.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// PickupAddress returns the trimmed pickup address.
func (r Request) PickupAddress() string {
	return r.pickupAddress
}

// DeliveryAddress returns the trimmed delivery address.
func (r Request) DeliveryAddress() string {
	return r.deliveryAddress
}

// Category returns the declared parcel category.
func (r Request) Category() Category {
	return r.category
}

// Weight returns the declared weight.
func (r Request) Weight() Weight {
	return r.weight
}

// Scheduling returns the scheduling choice.
func (r Request) Scheduling() Scheduling {
	return r.scheduling
}

func (r *Request) setPickupAddress(address string) error {
	v, err := cleanAddress("pickupAddress", address)
	if err != nil {
		return err
	}
	r.pickupAddress = v
	return nil
}

func (r *Request) setDeliveryAddress(address string) error {
	v, err := cleanAddress("deliveryAddress", address)
	if err != nil {
		return err
	}
	r.deliveryAddress = v
	return nil
}

func (r *Request) setCategory(category Category) error {
	if category == "" {
		return errs.NewValueIsRequiredError("category")
	}
	if !category.IsValid() {
		return errs.NewValueIsInvalidError("category")
	}
	r.category = category
	return nil
}

func (r *Request) setScheduling(scheduling Scheduling) error {
	if err := scheduling.Validate(); err != nil {
		return err
	}
	r.scheduling = scheduling
	return nil
}

func cleanAddress(param, address string) (string, error) {
	v := strings.TrimSpace(address)
	if v == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if len(v) > MaxAddressLength {
		return "", errs.NewValueIsOutOfRangeError(param+" length", len(v), 1, MaxAddressLength)
	}
	return v, nil
}
