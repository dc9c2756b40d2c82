// Package police talks to the data.police.uk street-level crime API.
// The API is open and unkeyed.
package police

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

	"propertypulse/internal/adapters/observability"
	"propertypulse/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
}

func New(base string) *Client {
	if base == "" {
		base = "https://data.police.uk/api"
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Upstream wire shape. Coordinates arrive as strings.
type streetCrime struct {
	Category string `json:"category"`
	Month    string `json:"month"`
	Location struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
		Street    struct {
			Name string `json:"name"`
		} `json:"street"`
	} `json:"location"`
	OutcomeStatus *struct {
		Category string `json:"category"`
	} `json:"outcome_status"`
}

// StreetCrimes lists crimes within the API's fixed one-mile radius of the
// coordinate for the latest available month.
func (c *Client) StreetCrimes(ctx context.Context, lat, lng float64) ([]domain.CrimeReport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/crimes-street/all-crime?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "propertypulse/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("police", "crimes-street", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("police crimes-street request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("police", "crimes-street", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, domain.ProviderStatusError{
			Service: "police.uk", Status: strconv.Itoa(resp.StatusCode),
		}
	}

	var raw []streetCrime
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("police crimes-street: decode response: %w", err)
	}

	crimes := make([]domain.CrimeReport, 0, len(raw))
	for _, sc := range raw {
		cr := domain.CrimeReport{
			Category:   sc.Category,
			Month:      sc.Month,
			StreetName: sc.Location.Street.Name,
		}
		cr.Lat, _ = strconv.ParseFloat(sc.Location.Latitude, 64)
		cr.Lng, _ = strconv.ParseFloat(sc.Location.Longitude, 64)
		if sc.OutcomeStatus != nil {
			cr.OutcomeStatus = sc.OutcomeStatus.Category
		}
		crimes = append(crimes, cr)
	}
	return crimes, nil
}
