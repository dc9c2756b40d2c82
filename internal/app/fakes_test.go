package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"propertypulse/internal/app"
	"propertypulse/internal/domain"
)

// ---- fakes ----

type fakeGeocoder struct {
	loc   domain.Location
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(_ context.Context, postcode string) (domain.Location, error) {
	f.calls++
	if f.err != nil {
		return domain.Location{}, f.err
	}
	loc := f.loc
	loc.Postcode = postcode
	return loc, nil
}

// fakePlaces answers each query by its label and records call order.
type fakePlaces struct {
	results map[string][]domain.PlaceCandidate
	errs    map[string]error
	calls   []string
}

func (f *fakePlaces) Nearby(_ context.Context, _, _ float64, _ int, q domain.NearbyQuery) ([]domain.PlaceCandidate, error) {
	f.calls = append(f.calls, q.Label())
	if err := f.errs[q.Label()]; err != nil {
		return nil, err
	}
	return f.results[q.Label()], nil
}

type fakeCrime struct {
	crimes []domain.CrimeReport
	err    error
	calls  int
}

func (f *fakeCrime) StreetCrimes(_ context.Context, _, _ float64) ([]domain.CrimeReport, error) {
	f.calls++
	return f.crimes, f.err
}

type fakeFlood struct {
	warnings []domain.FloodWarning
	err      error
	calls    int
}

func (f *fakeFlood) Warnings(_ context.Context, _, _ float64, _ float64) ([]domain.FloodWarning, error) {
	f.calls++
	return f.warnings, f.err
}

// fakeCache stores JSON so it round-trips any value type. Guarded by a mutex
// because summary lookups hit it from several goroutines.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	b, ok := c.store[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	c.mu.Unlock()
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
	return nil
}

// ---- helpers ----

var testLocation = domain.Location{
	Lat:              53.4794,
	Lng:              -2.2453,
	FormattedAddress: "Manchester M1 1RG, UK",
	AdminDistrict:    "Greater Manchester",
	Region:           "England",
}

func newService(g *fakeGeocoder, p *fakePlaces, cr *fakeCrime, fl *fakeFlood) *app.LookupService {
	if g == nil {
		g = &fakeGeocoder{loc: testLocation}
	}
	if p == nil {
		p = &fakePlaces{}
	}
	if cr == nil {
		cr = &fakeCrime{}
	}
	if fl == nil {
		fl = &fakeFlood{}
	}
	return app.NewLookupService(g, p, cr, fl, &fakeCache{}, 10*time.Minute)
}

func candidate(id, name string, types ...string) domain.PlaceCandidate {
	return domain.PlaceCandidate{
		PlaceID:  id,
		Name:     name,
		Lat:      53.4808,
		Lng:      -2.2426,
		Types:    types,
		Vicinity: "Manchester",
	}
}
