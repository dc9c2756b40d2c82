package domain

// CrimeReport is one street-level crime as reported by data.police.uk,
// reduced to the fields the dashboard shows.
type CrimeReport struct {
	Category      string  `json:"category"`
	Month         string  `json:"month"` // YYYY-MM
	StreetName    string  `json:"street_name,omitempty"`
	Lat           float64 `json:"latitude"`
	Lng           float64 `json:"longitude"`
	OutcomeStatus string  `json:"outcome_status,omitempty"`
}

// CategoryCount is one row of the per-category breakdown, most frequent first.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CrimeSummary struct {
	Total      int             `json:"total"`
	ByCategory []CategoryCount `json:"by_category"`
	Crimes     []CrimeReport   `json:"crimes"`
}
