// Package geocoding resolves addresses to coordinates. HTTPClient talks to a
// remote geocoding API; Gazetteer answers locally from a fixed table of UK
// places for demos and tests.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const serviceName = "geocoder"

// HTTPConfig configures HTTPClient. Zero RequestsPerSecond disables limiting.
type HTTPConfig struct {
	BaseURL           string
	APIKey            string
	RequestsPerSecond float64
	Timeout           time.Duration
}

type geocodeResponse struct {
	Results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"results"`
}

// HTTPClient calls GET {BaseURL}/v1/geocode?q=<address> and takes the first
// result. Calls are paced by a token bucket shared by all goroutines.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errs.NewValueIsRequiredError("geocoder base url")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("geocoder base url", fmt.Errorf("cannot parse %q", cfg.BaseURL))
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPClient{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
	}, nil
}

// Geocode maps the remote status codes as follows: 404 or no results is
// errs.ErrObjectNotFound, 400 and 422 are errs.ErrValueIsInvalid, 401 and 403
// are rejected, 429 and 5xx are unavailable.
func (c *HTTPClient) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return kernel.GeoPoint{}, errs.NewExternalServiceError(serviceName, errs.KindTimeout, err)
	}

	endpoint := c.baseURL.JoinPath("v1", "geocode")
	endpoint.RawQuery = url.Values{"q": []string{address}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return kernel.GeoPoint{}, errs.NewExternalServiceError(serviceName, errs.KindTimeout, err)
		}
		return kernel.GeoPoint{}, errs.ClassifyContextError(serviceName, err)
	}
	defer resp.Body.Close()

	if err = statusError(resp, address); err != nil {
		return kernel.GeoPoint{}, err
	}

	var body geocodeResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return kernel.GeoPoint{}, errs.NewExternalServiceError(serviceName, errs.KindUnavailable,
			fmt.Errorf("decode response: %w", err))
	}
	if len(body.Results) == 0 {
		return kernel.GeoPoint{}, errs.NewObjectNotFoundError("address", address)
	}

	point, err := kernel.NewGeoPoint(body.Results[0].Lat, body.Results[0].Lon)
	if err != nil {
		return kernel.GeoPoint{}, errs.NewExternalServiceError(serviceName, errs.KindUnavailable, err)
	}
	return point, nil
}

func statusError(resp *http.Response, address string) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errs.NewObjectNotFoundError("address", address)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return errs.NewValueIsInvalidErrorWithCause("address", fmt.Errorf("geocoder answered %d", code))
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errs.NewExternalServiceError(serviceName, errs.KindRejected, fmt.Errorf("status %d", code))
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return errs.NewExternalServiceError(serviceName, errs.KindTimeout, fmt.Errorf("status %d", code))
	default:
		return errs.NewExternalServiceError(serviceName, errs.KindUnavailable, fmt.Errorf("status %d", code))
	}
}
