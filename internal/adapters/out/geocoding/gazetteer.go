package geocoding

import (
	"context"
	"hash/fnv"
	"sort"
	"strings"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
)

type place struct {
	name     string
	lat, lon float64
}

var ukPlaces = []place{
	{"london", 51.5074, -0.1278},
	{"westminster", 51.4975, -0.1357},
	{"camden", 51.5390, -0.1426},
	{"greenwich", 51.4826, 0.0077},
	{"croydon", 51.3762, -0.0982},
	{"wimbledon", 51.4214, -0.2064},
	{"stratford", 51.5413, -0.0035},
	{"watford", 51.6565, -0.3903},
	{"reading", 51.4543, -0.9781},
	{"oxford", 51.7520, -1.2577},
	{"cambridge", 52.2053, 0.1218},
	{"brighton", 50.8225, -0.1372},
	{"bristol", 51.4545, -2.5879},
	{"bath", 51.3811, -2.3590},
	{"birmingham", 52.4862, -1.8904},
	{"coventry", 52.4068, -1.5197},
	{"manchester", 53.4808, -2.2426},
	{"salford", 53.4875, -2.2901},
	{"stockport", 53.4106, -2.1575},
	{"liverpool", 53.4084, -2.9916},
	{"leeds", 53.8008, -1.5491},
	{"bradford", 53.7960, -1.7594},
	{"york", 53.9590, -1.0815},
	{"sheffield", 53.3811, -1.4701},
	{"nottingham", 52.9548, -1.1581},
	{"newcastle", 54.9783, -1.6178},
	{"edinburgh", 55.9533, -3.1883},
	{"glasgow", 55.8642, -4.2518},
	{"cardiff", 51.4816, -3.1791},
	{"belfast", 54.5973, -5.9301},
}

// Unknown addresses land inside this box around central London.
const (
	fallbackMinLat = 51.40
	fallbackMaxLat = 51.62
	fallbackMinLon = -0.30
	fallbackMaxLon = 0.05
)

// Gazetteer implements ports.Geocoder without network access. An address that
// names a known place resolves to that place; the longest matching name wins,
// so "New Street, Birmingham" beats a shorter accidental match. Any other
// address is hashed to a stable point in the fallback box, so the same text
// always yields the same coordinates.
type Gazetteer struct {
	places []place
}

func NewGazetteer() *Gazetteer {
	places := make([]place, len(ukPlaces))
	copy(places, ukPlaces)
	sort.SliceStable(places, func(i, j int) bool {
		return len(places[i].name) > len(places[j].name)
	})
	return &Gazetteer{places: places}
}

func (g *Gazetteer) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return kernel.GeoPoint{}, errs.ClassifyContextError(serviceName, err)
	}

	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	if normalized == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	for _, p := range g.places {
		for _, w := range words {
			if w == p.name {
				return kernel.NewGeoPoint(p.lat, p.lon)
			}
		}
	}

	return fallbackPoint(normalized)
}

func fallbackPoint(normalized string) (kernel.GeoPoint, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	sum := h.Sum64()

	latFrac := float64(sum>>32) / float64(1<<32)
	lonFrac := float64(sum&0xffffffff) / float64(1<<32)

	return kernel.NewGeoPoint(
		fallbackMinLat+latFrac*(fallbackMaxLat-fallbackMinLat),
		fallbackMinLon+lonFrac*(fallbackMaxLon-fallbackMinLon),
	)
}
