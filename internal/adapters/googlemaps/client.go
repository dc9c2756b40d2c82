// Package googlemaps talks to the Google Geocoding and Places Nearby Search
// APIs. Requests are rate limited client-side; there are no automatic
// retries, since every call is user-interactive and billed upstream.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"propertypulse/internal/adapters/observability"
	"propertypulse/internal/domain"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

// New builds a client. An empty key is a configuration error: every endpoint
// this client serves requires one.
func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("googlemaps: API key is required")
	}
	if base == "" {
		base = "https://maps.googleapis.com/maps/api"
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Geocode resolves a UK postcode to a Location. The lookup is constrained to
// country:GB. Zero results map to domain.ErrPostcodeNotFound; any other
// non-OK provider status maps to a domain.ProviderStatusError.
func (c *Client) Geocode(ctx context.Context, postcode string) (domain.Location, error) {
	q := url.Values{}
	q.Set("address", postcode)
	q.Set("key", c.key)
	q.Set("components", "country:GB")

	var out geocodeResponse
	if err := c.get(ctx, "/geocode/json", "geocode", q, &out); err != nil {
		return domain.Location{}, err
	}

	switch out.Status {
	case statusOK:
	case statusZeroResults:
		return domain.Location{}, fmt.Errorf("%w: %s", domain.ErrPostcodeNotFound, postcode)
	default:
		return domain.Location{}, domain.ProviderStatusError{
			Service: "google geocoding", Status: out.Status, Message: out.ErrorMessage,
		}
	}
	if len(out.Results) == 0 {
		return domain.Location{}, fmt.Errorf("%w: %s", domain.ErrPostcodeNotFound, postcode)
	}

	r := out.Results[0]
	loc := domain.Location{
		Postcode:         postcode,
		Lat:              r.Geometry.Location.Lat,
		Lng:              r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
	}
	if loc.FormattedAddress == "" {
		loc.FormattedAddress = postcode
	}
	loc.AdminDistrict = componentLongName(r.AddressComponents, "administrative_area_level_2")
	loc.Region = componentLongName(r.AddressComponents, "administrative_area_level_1")
	return loc, nil
}

// Nearby runs one Nearby Search query. Zero results is (nil, nil); a non-OK
// provider status is a domain.ProviderStatusError so the aggregator can skip
// the query without treating it as a transport failure.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radiusMeters int, nq domain.NearbyQuery) ([]domain.PlaceCandidate, error) {
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("location", fmt.Sprintf("%v,%v", lat, lng))
	q.Set("radius", strconv.Itoa(radiusMeters))
	if nq.Type != "" {
		q.Set("type", nq.Type)
	}
	if nq.Keyword != "" {
		q.Set("keyword", nq.Keyword)
	}

	var out nearbyResponse
	if err := c.get(ctx, "/place/nearbysearch/json", "nearbysearch", q, &out); err != nil {
		return nil, err
	}

	switch out.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, domain.ProviderStatusError{
			Service: "google places", Status: out.Status, Message: out.ErrorMessage,
		}
	}

	candidates := make([]domain.PlaceCandidate, 0, len(out.Results))
	for _, r := range out.Results {
		candidates = append(candidates, domain.PlaceCandidate{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Lat:      r.Geometry.Location.Lat,
			Lng:      r.Geometry.Location.Lng,
			Types:    r.Types,
			Vicinity: r.Vicinity,
		})
	}
	return candidates, nil
}

func (c *Client) get(ctx context.Context, path, endpoint string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "propertypulse/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("googlemaps", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("googlemaps %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("googlemaps", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("googlemaps %s: bad status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("googlemaps %s: decode response: %w", endpoint, err)
	}
	return nil
}

func componentLongName(comps []addressComponent, typ string) string {
	for _, comp := range comps {
		for _, t := range comp.Types {
			if t == typ {
				return comp.LongName
			}
		}
	}
	return ""
}
