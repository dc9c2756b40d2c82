package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"propertypulse/internal/domain"
	"propertypulse/internal/geo"
)

// nearbyQueries is the fixed, ordered set of Places queries one transport
// aggregation issues. The order is load-bearing: deduplication keeps the
// first classification recorded for a place_id, so a place reachable by
// several queries is classified by the earliest one here.
var nearbyQueries = []domain.NearbyQuery{
	{Type: "train_station"},
	{Type: "subway_station"},
	{Type: "light_rail_station"},
	{Keyword: "Metrolink station"},
	{Keyword: "tram stop"},
	{Type: "bus_station"},
	{Keyword: "bus stop"},
}

// Origin is the point distances are measured from. A nil Origin leaves every
// distance unset.
type Origin struct {
	Lat float64
	Lng float64
}

// Transport resolves the postcode and aggregates nearby transport places
// within radiusMeters, measuring distances from the resolved coordinate.
func (s *LookupService) Transport(ctx context.Context, raw string, radiusMeters int) (domain.Location, domain.AggregatedResult, error) {
	loc, err := s.ResolveLocation(ctx, raw)
	if err != nil {
		return domain.Location{}, domain.AggregatedResult{}, err
	}
	res := s.AggregateNearby(ctx, loc.Lat, loc.Lng, radiusMeters, &Origin{Lat: loc.Lat, Lng: loc.Lng})
	return loc, res, nil
}

// AggregateNearby issues the fixed queries strictly in order, classifies and
// deduplicates the candidates, and computes distances from origin.
//
// Failure policy: a transport-level error stops the remaining queries and is
// recorded on the result alongside whatever was already gathered; a non-OK
// provider status skips only that query. Complete results are memoized per
// (lat, lng, radius) for the places TTL; partial ones are not.
func (s *LookupService) AggregateNearby(ctx context.Context, lat, lng float64, radiusMeters int, origin *Origin) domain.AggregatedResult {
	key := fmt.Sprintf("places:%.6f:%.6f:%d", lat, lng, radiusMeters)
	var cached domain.AggregatedResult
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached
	}

	set := newPlaceSet()
	var aggErr string

	for _, q := range nearbyQueries {
		candidates, err := s.places.Nearby(ctx, lat, lng, radiusMeters, q)
		if err != nil {
			var pse domain.ProviderStatusError
			if errors.As(err, &pse) {
				log.Warn().
					Str("query", q.Label()).
					Str("status", pse.Status).
					Str("message", pse.Message).
					Msg("places query skipped")
				continue
			}
			log.Error().Err(err).Str("query", q.Label()).Msg("places query failed, stopping aggregation")
			aggErr = err.Error()
			break
		}

		for _, cand := range candidates {
			if cand.PlaceID == "" {
				continue
			}
			mode, ok := ClassifyMode(cand.Name, cand.Types)
			if !ok {
				continue
			}
			place := domain.TransportPlace{
				PlaceID:       cand.PlaceID,
				Name:          cand.Name,
				Lat:           cand.Lat,
				Lng:           cand.Lng,
				Mode:          mode,
				Vicinity:      cand.Vicinity,
				ProviderTypes: cand.Types,
				FoundBy:       q.Label(),
			}
			if origin != nil {
				d := geo.Distance(origin.Lat, origin.Lng, cand.Lat, cand.Lng)
				place.DistanceMeters = &d
			}
			set.InsertIfAbsent(place)
		}
	}

	res := domain.AggregatedResult{Places: set.Places(), Err: aggErr}
	if aggErr == "" {
		_ = s.cache.Set(ctx, key, res, int(s.placesTTL.Seconds()))
	}
	return res
}
