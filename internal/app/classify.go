package app

import (
	"strings"

	"propertypulse/internal/domain"
)

// classificationRule pairs a predicate with the mode it assigns. Rules are
// evaluated in declaration order and the first match wins, so the precedence
// between overlapping Google taxonomies lives here, in one visible list.
type classificationRule struct {
	mode  domain.Mode
	match func(nameLower string, types []string) bool
}

var classificationRules = []classificationRule{
	// Metrolink is a light-rail brand Google frequently tags as train_station;
	// the name beats every category tag.
	{domain.ModeTram, func(name string, _ []string) bool {
		return strings.Contains(name, "metrolink")
	}},
	{domain.ModeTube, func(_ string, types []string) bool {
		return hasType(types, "subway_station")
	}},
	{domain.ModeTram, func(_ string, types []string) bool {
		return hasType(types, "light_rail_station")
	}},
	// "tram" in the name, unless Google also calls it a train station
	// (some rail stations carry "tram" in interchange names).
	{domain.ModeTram, func(name string, types []string) bool {
		return strings.Contains(name, "tram") && !hasType(types, "train_station")
	}},
	{domain.ModeTrain, func(_ string, types []string) bool {
		return hasType(types, "train_station")
	}},
	{domain.ModeBus, func(_ string, types []string) bool {
		return hasType(types, "bus_station") || hasType(types, "bus_stop")
	}},
}

// ClassifyMode folds a raw candidate into one of the four transport modes.
// Returns false when no rule matches; such candidates are discarded.
func ClassifyMode(name string, providerTypes []string) (domain.Mode, bool) {
	nameLower := strings.ToLower(name)
	for _, r := range classificationRules {
		if r.match(nameLower, providerTypes) {
			return r.mode, true
		}
	}
	return "", false
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
