package app_test

import (
	"context"
	"errors"
	"testing"

	"propertypulse/internal/app"
	"propertypulse/internal/domain"
	"propertypulse/internal/geo"
)

func TestAggregate_DuplicateAcrossQueries_FirstQueryWins(t *testing.T) {
	// Place X comes back from query 1 (train_station) and query 3
	// (light_rail_station). Query order decides: it stays a train station.
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station":      {candidate("X", "Manchester Piccadilly", "train_station")},
		"light_rail_station": {candidate("X", "Manchester Piccadilly", "light_rail_station")},
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if len(res.Places) != 1 {
		t.Fatalf("expected exactly one entry for X, got %d", len(res.Places))
	}
	if res.Places[0].PlaceID != "X" || res.Places[0].Mode != domain.ModeTrain {
		t.Fatalf("expected X classified train_station, got %+v", res.Places[0])
	}
	if res.Places[0].FoundBy != "train_station" {
		t.Fatalf("expected the first query recorded as source, got %q", res.Places[0].FoundBy)
	}
}

func TestAggregate_MetrolinkNameBeatsCategories(t *testing.T) {
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station": {candidate("P", "Manchester Metrolink - Piccadilly", "light_rail_station", "train_station")},
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if len(res.Places) != 1 || res.Places[0].Mode != domain.ModeTram {
		t.Fatalf("expected Metrolink place classified tram_stop, got %+v", res.Places)
	}
}

func TestAggregate_SkipsCandidatesWithoutPlaceID(t *testing.T) {
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station": {
			candidate("", "Ghost Station", "train_station"),
			candidate("ok", "Real Station", "train_station"),
		},
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if len(res.Places) != 1 || res.Places[0].PlaceID != "ok" {
		t.Fatalf("expected only the identified candidate, got %+v", res.Places)
	}
}

func TestAggregate_DiscardsUnclassified(t *testing.T) {
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"bus stop": {
			candidate("cafe", "Station Cafe", "cafe", "food"),
			candidate("stop", "Oxford Road Stop", "bus_stop"),
		},
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if len(res.Places) != 1 || res.Places[0].PlaceID != "stop" || res.Places[0].Mode != domain.ModeBus {
		t.Fatalf("expected only the bus stop, got %+v", res.Places)
	}
}

func TestAggregate_TransportFailureStopsRemainingQueries(t *testing.T) {
	places := &fakePlaces{errs: map[string]error{
		"train_station": errors.New("dial tcp: i/o timeout"),
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if res.Err == "" {
		t.Fatalf("expected error indicator on result")
	}
	if len(res.Places) != 0 {
		t.Fatalf("expected empty result set, got %+v", res.Places)
	}
	if len(places.calls) != 1 {
		t.Fatalf("expected no further queries after the failure, got %v", places.calls)
	}

	// Partial results are not memoized: a second aggregation queries again.
	_ = svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if len(places.calls) != 2 {
		t.Fatalf("expected the failed aggregation to be retried on demand, got %v", places.calls)
	}
}

func TestAggregate_TransportFailureKeepsEarlierPlaces(t *testing.T) {
	places := &fakePlaces{
		results: map[string][]domain.PlaceCandidate{
			"train_station": {candidate("T", "Oxford Road", "train_station")},
		},
		errs: map[string]error{
			"subway_station": errors.New("connection reset"),
		},
	}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if res.Err == "" || len(res.Places) != 1 || res.Places[0].PlaceID != "T" {
		t.Fatalf("expected partial result with T preserved, got %+v", res)
	}
	if len(places.calls) != 2 {
		t.Fatalf("expected aggregation to stop at the second query, got %v", places.calls)
	}
}

func TestAggregate_ProviderStatusSkipsSingleQuery(t *testing.T) {
	places := &fakePlaces{
		results: map[string][]domain.PlaceCandidate{
			"bus_station": {candidate("B", "Chorlton Street", "bus_station")},
		},
		errs: map[string]error{
			"subway_station": domain.ProviderStatusError{Service: "google places", Status: "OVER_QUERY_LIMIT"},
		},
	}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if res.Err != "" {
		t.Fatalf("provider status must not mark the result failed: %s", res.Err)
	}
	if len(places.calls) != 7 {
		t.Fatalf("expected all seven queries issued, got %v", places.calls)
	}
	if len(res.Places) != 1 || res.Places[0].PlaceID != "B" {
		t.Fatalf("expected the bus station from the later query, got %+v", res.Places)
	}
}

func TestAggregate_QueryOrderIsFixed(t *testing.T) {
	places := &fakePlaces{}
	svc := newService(nil, places, nil, nil)

	_ = svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	want := []string{
		"train_station", "subway_station", "light_rail_station",
		"Metrolink station", "tram stop", "bus_station", "bus stop",
	}
	if len(places.calls) != len(want) {
		t.Fatalf("expected %d queries, got %v", len(want), places.calls)
	}
	for i, label := range want {
		if places.calls[i] != label {
			t.Fatalf("query %d: got %q, want %q (full order %v)", i, places.calls[i], label, places.calls)
		}
	}
}

func TestAggregate_DistanceFromOrigin(t *testing.T) {
	cand := candidate("T", "Oxford Road", "train_station")
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station": {cand},
	}}
	svc := newService(nil, places, nil, nil)

	origin := &app.Origin{Lat: 53.4794, Lng: -2.2453}
	res := svc.AggregateNearby(context.Background(), 53.4794, -2.2453, 1500, origin)
	if len(res.Places) != 1 {
		t.Fatalf("expected one place, got %+v", res.Places)
	}
	want := geo.Distance(origin.Lat, origin.Lng, cand.Lat, cand.Lng)
	if res.Places[0].DistanceMeters == nil || *res.Places[0].DistanceMeters != want {
		t.Fatalf("expected distance %dm, got %+v", want, res.Places[0].DistanceMeters)
	}
}

func TestAggregate_NoOriginLeavesDistanceUnset(t *testing.T) {
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station": {candidate("T", "Oxford Road", "train_station")},
	}}
	svc := newService(nil, places, nil, nil)

	res := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if res.Places[0].DistanceMeters != nil {
		t.Fatalf("expected unset distance, got %d", *res.Places[0].DistanceMeters)
	}
}

func TestAggregate_MemoizedPerCoordinateAndRadius(t *testing.T) {
	places := &fakePlaces{results: map[string][]domain.PlaceCandidate{
		"train_station": {candidate("T", "Oxford Road", "train_station")},
	}}
	svc := newService(nil, places, nil, nil)

	first := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	second := svc.AggregateNearby(context.Background(), 53.48, -2.24, 1500, nil)
	if len(places.calls) != 7 {
		t.Fatalf("expected the second aggregation served from cache, got %d calls", len(places.calls))
	}
	if len(first.Places) != 1 || len(second.Places) != 1 || second.Places[0].PlaceID != "T" {
		t.Fatalf("cached result mismatch: %+v vs %+v", first, second)
	}

	// A different radius is a different memoization key.
	_ = svc.AggregateNearby(context.Background(), 53.48, -2.24, 3000, nil)
	if len(places.calls) != 14 {
		t.Fatalf("expected a fresh aggregation for the new radius, got %d calls", len(places.calls))
	}
}
