package app

import "propertypulse/internal/domain"

// placeSet is an insertion-ordered set of TransportPlace keyed by PlaceID.
type placeSet struct {
	order []string
	byID  map[string]domain.TransportPlace
}

func newPlaceSet() *placeSet {
	return &placeSet{byID: make(map[string]domain.TransportPlace)}
}

// InsertIfAbsent records p only when its PlaceID has not been seen before,
// and reports whether it was inserted. This is the dedup tie-break: a place
// reachable by several queries keeps the classification of whichever query
// ran first, and later occurrences are dropped entirely.
func (ps *placeSet) InsertIfAbsent(p domain.TransportPlace) bool {
	if _, seen := ps.byID[p.PlaceID]; seen {
		return false
	}
	ps.byID[p.PlaceID] = p
	ps.order = append(ps.order, p.PlaceID)
	return true
}

// Places returns the set in insertion order.
func (ps *placeSet) Places() []domain.TransportPlace {
	out := make([]domain.TransportPlace, 0, len(ps.order))
	for _, id := range ps.order {
		out = append(out, ps.byID[id])
	}
	return out
}
