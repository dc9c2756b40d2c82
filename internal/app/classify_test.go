package app_test

import (
	"testing"

	"propertypulse/internal/app"
	"propertypulse/internal/domain"
)

func TestClassifyMode(t *testing.T) {
	cases := []struct {
		name     string
		place    string
		types    []string
		wantMode domain.Mode
		wantOK   bool
	}{
		{
			name:     "metrolink name wins over train and light-rail tags",
			place:    "Manchester Metrolink - Piccadilly",
			types:    []string{"light_rail_station", "train_station"},
			wantMode: domain.ModeTram, wantOK: true,
		},
		{
			name:     "metrolink match is case-insensitive",
			place:    "ST PETER'S SQUARE METROLINK STOP",
			types:    []string{"transit_station"},
			wantMode: domain.ModeTram, wantOK: true,
		},
		{
			name:     "subway tag beats light-rail tag",
			place:    "Angel",
			types:    []string{"subway_station", "light_rail_station"},
			wantMode: domain.ModeTube, wantOK: true,
		},
		{
			name:     "light-rail tag alone is a tram",
			place:    "Exchange Square",
			types:    []string{"light_rail_station"},
			wantMode: domain.ModeTram, wantOK: true,
		},
		{
			name:     "tram in name without train tag is a tram",
			place:    "Fleetwood Ferry Tram Stop",
			types:    []string{"transit_station"},
			wantMode: domain.ModeTram, wantOK: true,
		},
		{
			name:     "tram in name with train tag stays a train",
			place:    "Tramway Crossing Station",
			types:    []string{"train_station"},
			wantMode: domain.ModeTrain, wantOK: true,
		},
		{
			name:     "plain train station",
			place:    "Manchester Oxford Road",
			types:    []string{"train_station", "transit_station"},
			wantMode: domain.ModeTrain, wantOK: true,
		},
		{
			name:     "bus station tag",
			place:    "Chorlton Street Coach Station",
			types:    []string{"bus_station"},
			wantMode: domain.ModeBus, wantOK: true,
		},
		{
			name:     "bus stop tag",
			place:    "Portland Street (Stop C)",
			types:    []string{"bus_stop"},
			wantMode: domain.ModeBus, wantOK: true,
		},
		{
			name:   "no matching rule discards the candidate",
			place:  "Piccadilly Taxi Rank",
			types:  []string{"taxi_stand", "point_of_interest"},
			wantOK: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mode, ok := app.ClassifyMode(c.place, c.types)
			if ok != c.wantOK {
				t.Fatalf("ok=%v, want %v", ok, c.wantOK)
			}
			if ok && mode != c.wantMode {
				t.Fatalf("mode=%s, want %s", mode, c.wantMode)
			}
		})
	}
}
