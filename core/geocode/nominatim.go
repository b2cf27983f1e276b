package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMalformedResponse is returned when the service answers with data that
	// cannot be read as coordinates.
	ErrMalformedResponse = errors.New("malformed geocoding response")
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected geocoding status")
)

// NominatimClient queries a Nominatim-compatible /search endpoint.
type NominatimClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimClient creates a client from cfg.
func NewNominatimClient(cfg Config) *NominatimClient {
	return &NominatimClient{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search returns the best match for q or nil when there is none.
func (c *NominatimClient) Search(ctx context.Context, q Query) (*Point, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "0")
	params.Set("countrycodes", strings.ToLower(q.CountryCode))
	params.Set("q", q.City)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lngErr != nil {
		return nil, fmt.Errorf("%w: lat=%q lon=%q", ErrMalformedResponse, results[0].Lat, results[0].Lon)
	}

	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range (%v, %v)", ErrMalformedResponse, lat, lng)
	}
	return &p, nil
}
