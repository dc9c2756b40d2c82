package domain

// Mode is the unified transport classification. Google's taxonomy is wider and
// messier; every candidate we keep is folded into one of these four.
type Mode string

const (
	ModeTrain Mode = "train_station"
	ModeTube  Mode = "tube_station"
	ModeTram  Mode = "tram_stop"
	ModeBus   Mode = "bus_stop"
)

// NearbyQuery is one Places Nearby Search request variant: exactly one of
// Type or Keyword is set.
type NearbyQuery struct {
	Type    string `json:"type,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

// Label is the short human form used in logs and the "found by" field.
func (q NearbyQuery) Label() string {
	if q.Type != "" {
		return q.Type
	}
	return q.Keyword
}

// PlaceCandidate is one raw Places result before classification.
type PlaceCandidate struct {
	PlaceID  string
	Name     string
	Lat      float64
	Lng      float64
	Types    []string
	Vicinity string
}

// TransportPlace is one classified transport point in an aggregated result.
// DistanceMeters is nil when no origin coordinate was supplied.
type TransportPlace struct {
	PlaceID        string   `json:"place_id"`
	Name           string   `json:"name"`
	Lat            float64  `json:"latitude"`
	Lng            float64  `json:"longitude"`
	Mode           Mode     `json:"mode"`
	Vicinity       string   `json:"vicinity,omitempty"`
	DistanceMeters *int     `json:"distance_meters,omitempty"`
	ProviderTypes  []string `json:"provider_types,omitempty"`
	FoundBy        string   `json:"found_by,omitempty"`
}

// AggregatedResult is the outcome of one transport aggregation. Places are in
// insertion order (query order, then result order within a query), with
// PlaceID unique across the set. Err is non-empty when a transport-level
// failure cut the aggregation short; the places gathered before the failure
// are still present.
type AggregatedResult struct {
	Places []TransportPlace `json:"places"`
	Err    string           `json:"error,omitempty"`
}
