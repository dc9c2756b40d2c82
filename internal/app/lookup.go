package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"propertypulse/internal/domain"
)

// LookupService answers postcode lookups by composing the external sources
// behind the domain ports. It holds no per-lookup state; the only thing that
// survives a call is what the cache memoizes.
type LookupService struct {
	geocoder domain.Geocoder
	places   domain.PlacesSearcher
	crime    domain.CrimeSource
	flood    domain.FloodSource
	cache    domain.Cache

	placesTTL time.Duration
}

func NewLookupService(g domain.Geocoder, p domain.PlacesSearcher, cr domain.CrimeSource, fl domain.FloodSource, c domain.Cache, placesTTL time.Duration) *LookupService {
	return &LookupService{geocoder: g, places: p, crime: cr, flood: fl, cache: c, placesTTL: placesTTL}
}

// ResolveLocation validates, normalizes, and geocodes a postcode. Invalid
// input never reaches the geocoder. Successful resolutions are memoized
// without expiry; a postcode's coordinate does not move.
func (s *LookupService) ResolveLocation(ctx context.Context, raw string) (domain.Location, error) {
	ok, postcode, reason := domain.ValidatePostcode(raw)
	if !ok {
		return domain.Location{}, &domain.InvalidPostcodeError{Input: raw, Reason: reason}
	}

	key := "geocode:" + postcode
	var loc domain.Location
	if hit, _ := s.cache.Get(ctx, key, &loc); hit {
		return loc, nil
	}

	loc, err := s.geocoder.Geocode(ctx, postcode)
	if err != nil {
		return domain.Location{}, err
	}
	_ = s.cache.Set(ctx, key, loc, 0)
	return loc, nil
}

// Crime resolves the postcode and summarizes recent street-level crime
// around it. The summary is memoized per coordinate for the places TTL.
func (s *LookupService) Crime(ctx context.Context, raw string) (domain.Location, domain.CrimeSummary, error) {
	loc, err := s.ResolveLocation(ctx, raw)
	if err != nil {
		return domain.Location{}, domain.CrimeSummary{}, err
	}

	key := fmt.Sprintf("crime:%.6f:%.6f", loc.Lat, loc.Lng)
	var sum domain.CrimeSummary
	if hit, _ := s.cache.Get(ctx, key, &sum); hit {
		return loc, sum, nil
	}

	crimes, err := s.crime.StreetCrimes(ctx, loc.Lat, loc.Lng)
	if err != nil {
		return loc, domain.CrimeSummary{}, err
	}
	sum = summarizeCrimes(crimes)
	_ = s.cache.Set(ctx, key, sum, int(s.placesTTL.Seconds()))
	return loc, sum, nil
}

// Flood resolves the postcode and lists flood warnings within distKM of it.
func (s *LookupService) Flood(ctx context.Context, raw string, distKM float64) (domain.Location, []domain.FloodWarning, error) {
	loc, err := s.ResolveLocation(ctx, raw)
	if err != nil {
		return domain.Location{}, nil, err
	}

	key := fmt.Sprintf("flood:%.6f:%.6f:%g", loc.Lat, loc.Lng, distKM)
	var warnings []domain.FloodWarning
	if hit, _ := s.cache.Get(ctx, key, &warnings); hit {
		return loc, warnings, nil
	}

	warnings, err = s.flood.Warnings(ctx, loc.Lat, loc.Lng, distKM)
	if err != nil {
		return loc, nil, err
	}
	_ = s.cache.Set(ctx, key, warnings, int(s.placesTTL.Seconds()))
	return loc, warnings, nil
}

func summarizeCrimes(crimes []domain.CrimeReport) domain.CrimeSummary {
	counts := make(map[string]int)
	for _, cr := range crimes {
		counts[cr.Category]++
	}
	byCat := make([]domain.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		byCat = append(byCat, domain.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(byCat, func(i, j int) bool {
		if byCat[i].Count != byCat[j].Count {
			return byCat[i].Count > byCat[j].Count
		}
		return byCat[i].Category < byCat[j].Category
	})
	return domain.CrimeSummary{Total: len(crimes), ByCategory: byCat, Crimes: crimes}
}
