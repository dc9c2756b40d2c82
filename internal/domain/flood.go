package domain

// FloodWarning is one active warning from the Environment Agency
// flood-monitoring API. SeverityLevel runs 1 (severe warning) to 4
// (warning no longer in force).
type FloodWarning struct {
	Description   string `json:"description"`
	AreaName      string `json:"area_name,omitempty"`
	Severity      string `json:"severity"`
	SeverityLevel int    `json:"severity_level"`
	Message       string `json:"message,omitempty"`
	TimeRaised    string `json:"time_raised,omitempty"`
}
