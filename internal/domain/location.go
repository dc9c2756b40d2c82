package domain

// Location is the resolved form of a postcode: one coordinate plus the
// administrative metadata Google returns alongside it. Built once per lookup
// and never mutated afterwards.
type Location struct {
	Postcode         string  `json:"postcode"`
	Lat              float64 `json:"latitude"`
	Lng              float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	AdminDistrict    string  `json:"admin_district,omitempty"` // administrative_area_level_2
	Region           string  `json:"region,omitempty"`         // administrative_area_level_1
}
