package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const (
	// LatitudeMin is the southern bound of a valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northern bound of a valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the western bound of a valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the eastern bound of a valid longitude in degrees.
	LongitudeMax = 180.0

	earthRadiusMeters = 6371000.0
)

// ErrGeoPointIsNotConstructed is returned when a GeoPoint was not created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is a WGS84 latitude/longitude pair returned by the geocoder.
// The zero value is invalid and fails Validate.
//
// Example:
//
//	london, _ := kernel.NewGeoPoint(51.5074, -0.1278)
//	leeds, _ := kernel.NewGeoPoint(53.8008, -1.5491)
//	meters, _ := london.DistanceTo(leeds) // ~272 km
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates both coordinates and returns the point. Errors for
// latitude and longitude are joined so callers see every problem at once.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLat(lat), p.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate returns ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.5f,%.5f)", p.lat, p.lon)
}

// IsEqual compares two points. Both must be constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceTo returns the great-circle (haversine) distance to other in whole
// metres, rounded to nearest. The distance is symmetric and zero for equal points.
func (p GeoPoint) DistanceTo(other GeoPoint) (int, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := radians(other.lat - p.lat)
	dLon := radians(other.lon - p.lon)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(p.lat))*math.Cos(radians(other.lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return int(math.Round(earthRadiusMeters * c)), nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lon", lon, LongitudeMin, LongitudeMax)
	}

	p.lon = lon
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
