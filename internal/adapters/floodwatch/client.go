// Package floodwatch talks to the Environment Agency real-time
// flood-monitoring API. The API is open and unkeyed.
package floodwatch

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
		base = "https://environment.data.gov.uk/flood-monitoring"
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 15 * time.Second},
	}
}

type floodItem struct {
	Description   string `json:"description"`
	EAAreaName    string `json:"eaAreaName"`
	Severity      string `json:"severity"`
	SeverityLevel int    `json:"severityLevel"`
	Message       string `json:"message"`
	TimeRaised    string `json:"timeRaised"`
}

type floodResponse struct {
	Items []floodItem `json:"items"`
}

// Warnings lists flood warnings in force within distKM of the coordinate.
func (c *Client) Warnings(ctx context.Context, lat, lng float64, distKM float64) ([]domain.FloodWarning, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("long", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("dist", strconv.FormatFloat(distKM, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/id/floods?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "propertypulse/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("floodwatch", "floods", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("flood-monitoring request: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("floodwatch", "floods", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, domain.ProviderStatusError{
			Service: "environment agency", Status: strconv.Itoa(resp.StatusCode),
		}
	}

	var raw floodResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("flood-monitoring: decode response: %w", err)
	}

	warnings := make([]domain.FloodWarning, 0, len(raw.Items))
	for _, it := range raw.Items {
		warnings = append(warnings, domain.FloodWarning{
			Description:   it.Description,
			AreaName:      it.EAAreaName,
			Severity:      it.Severity,
			SeverityLevel: it.SeverityLevel,
			Message:       it.Message,
			TimeRaised:    it.TimeRaised,
		})
	}
	return warnings, nil
}
