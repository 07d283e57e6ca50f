package ports

import (
	"context"

	"parcelquote/internal/core/domain/model/kernel"
)

// Geocoder resolves a free-text address to coordinates.
//
// Implementations return errs.ExternalServiceError for transport problems
// (timeout, unavailable) and errs.ErrObjectNotFound when the address cannot be
// matched.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)
}
