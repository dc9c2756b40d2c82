package app

import (
	"fmt"
	"sort"

	"propertypulse/internal/domain"
)

// PlaceDetail is one place as the detail panel renders it.
type PlaceDetail struct {
	domain.TransportPlace
	MapsURL string `json:"maps_url"`
}

// ModeGroup is one mode's section of the result: marker styling for the map
// plus the detail list, nearest first.
type ModeGroup struct {
	Mode        domain.Mode   `json:"mode"`
	Label       string        `json:"label"`
	MarkerColor string        `json:"marker_color"`
	MarkerIcon  string        `json:"marker_icon"`
	Places      []PlaceDetail `json:"places"`
}

// TransportView is the presentation shape of an aggregation.
type TransportView struct {
	Total  int         `json:"total"`
	Groups []ModeGroup `json:"groups"`
	Error  string      `json:"error,omitempty"`
}

type modeStyle struct {
	mode  domain.Mode
	label string
	color string
	icon  string
}

// Display order and marker styling of the original dashboard's map legend.
var modeStyles = []modeStyle{
	{domain.ModeTrain, "Train Stations", "green", "train"},
	{domain.ModeTube, "Underground Stations", "purple", "subway"},
	{domain.ModeBus, "Bus Stops", "orange", "bus"},
	{domain.ModeTram, "Tram Stops", "darkred", "tram"},
}

// GroupByMode shapes an aggregated result for display: places grouped by mode
// in the fixed legend order, each group sorted by ascending distance with
// unset distances last. Empty groups are omitted.
func GroupByMode(res domain.AggregatedResult) TransportView {
	view := TransportView{Total: len(res.Places), Error: res.Err}

	byMode := make(map[domain.Mode][]PlaceDetail)
	for _, p := range res.Places {
		byMode[p.Mode] = append(byMode[p.Mode], PlaceDetail{
			TransportPlace: p,
			MapsURL:        mapsURL(p.PlaceID),
		})
	}

	for _, st := range modeStyles {
		places := byMode[st.mode]
		if len(places) == 0 {
			continue
		}
		sort.SliceStable(places, func(i, j int) bool {
			di, dj := places[i].DistanceMeters, places[j].DistanceMeters
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return *di < *dj
			}
		})
		view.Groups = append(view.Groups, ModeGroup{
			Mode:        st.mode,
			Label:       st.label,
			MarkerColor: st.color,
			MarkerIcon:  st.icon,
			Places:      places,
		})
	}
	return view
}

// mapsURL links a place on Google Maps by its provider identifier.
func mapsURL(placeID string) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=Google&query_place_id=%s", placeID)
}
