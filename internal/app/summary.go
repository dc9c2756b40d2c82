package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"propertypulse/internal/domain"
)

// Summary is the combined single-postcode view: everything the dashboard's
// pages show, in one response.
type Summary struct {
	Location  domain.Location       `json:"location"`
	Transport TransportView         `json:"transport"`
	Crime     domain.CrimeSummary   `json:"crime"`
	Flood     []domain.FloodWarning `json:"flood"`
}

// Lookup builds a Summary. The crime and flood fetches are independent of the
// transport aggregation, so they run concurrently with it; the seven places
// queries inside the aggregation stay strictly sequential.
func (s *LookupService) Lookup(ctx context.Context, raw string, radiusMeters int, floodDistKM float64) (Summary, error) {
	loc, err := s.ResolveLocation(ctx, raw)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{Location: loc}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res := s.AggregateNearby(gctx, loc.Lat, loc.Lng, radiusMeters, &Origin{Lat: loc.Lat, Lng: loc.Lng})
		out.Transport = GroupByMode(res)
		return nil
	})
	g.Go(func() error {
		_, sum, err := s.Crime(gctx, raw)
		if err != nil {
			return err
		}
		out.Crime = sum
		return nil
	})
	g.Go(func() error {
		_, warnings, err := s.Flood(gctx, raw, floodDistKM)
		if err != nil {
			return err
		}
		out.Flood = warnings
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
