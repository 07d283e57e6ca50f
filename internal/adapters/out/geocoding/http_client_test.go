package geocoding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"parcelquote/internal/adapters/out/geocoding"
	"parcelquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc, cfg geocoding.HTTPConfig) *geocoding.HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	c, err := geocoding.NewHTTPClient(cfg)
	require.NoError(t, err)
	return c
}

func TestHTTPClient_Geocode_Success(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/geocode", r.URL.Path)
		assert.Equal(t, "1 Deansgate, Manchester", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"lat":53.4808,"lon":-2.2426},{"lat":0,"lon":0}]}`))
	}, geocoding.HTTPConfig{APIKey: "secret"})

	p, err := c.Geocode(t.Context(), "  1 Deansgate, Manchester ")

	require.NoError(t, err)
	assert.InDelta(t, 53.4808, p.Lat(), 1e-9)
	assert.InDelta(t, -2.2426, p.Lon(), 1e-9)
}

func TestHTTPClient_Geocode_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "no results", status: http.StatusOK, body: `{"results":[]}`, want: errs.ErrObjectNotFound},
		{name: "not found", status: http.StatusNotFound, want: errs.ErrObjectNotFound},
		{name: "bad request", status: http.StatusBadRequest, want: errs.ErrValueIsInvalid},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, want: errs.ErrValueIsInvalid},
		{name: "unauthorized key", status: http.StatusUnauthorized, want: errs.ErrServiceRejected},
		{name: "forbidden key", status: http.StatusForbidden, want: errs.ErrServiceRejected},
		{name: "rate limited", status: http.StatusTooManyRequests, want: errs.ErrServiceUnavailable},
		{name: "server error", status: http.StatusInternalServerError, want: errs.ErrServiceUnavailable},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, want: errs.ErrServiceTimeout},
		{name: "garbage body", status: http.StatusOK, body: `{`, want: errs.ErrServiceUnavailable},
		{name: "coordinates out of range", status: http.StatusOK, body: `{"results":[{"lat":95,"lon":0}]}`, want: errs.ErrServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, geocoding.HTTPConfig{})

			_, err := c.Geocode(t.Context(), "somewhere")

			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHTTPClient_Geocode_EmptyAddress(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}, geocoding.HTTPConfig{})

	_, err := c.Geocode(t.Context(), "   ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Zero(t, calls.Load())
}

func TestHTTPClient_Geocode_ContextDeadline(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, geocoding.HTTPConfig{})
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Geocode(ctx, "London")

	require.ErrorIs(t, err, errs.ErrServiceTimeout)
}

func TestHTTPClient_Geocode_RateLimitHonoursContext(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"lat":51.5,"lon":-0.1}]}`))
	}, geocoding.HTTPConfig{RequestsPerSecond: 0.01})

	_, err := c.Geocode(t.Context(), "London")
	require.NoError(t, err, "first call uses the burst")

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Geocode(ctx, "London")

	require.ErrorIs(t, err, errs.ErrServiceTimeout)
}

func TestNewHTTPClient_InvalidConfig(t *testing.T) {
	_, err := geocoding.NewHTTPClient(geocoding.HTTPConfig{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = geocoding.NewHTTPClient(geocoding.HTTPConfig{BaseURL: "not a url"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
