package domain

import (
	"errors"
	"fmt"
)

// ErrPostcodeNotFound means the geocoder reported zero results for a
// well-formed postcode. An expected outcome, not a provider fault.
var ErrPostcodeNotFound = errors.New("postcode not found")

// InvalidPostcodeError is returned before any external call is made.
type InvalidPostcodeError struct {
	Input  string
	Reason string
}

func (e *InvalidPostcodeError) Error() string {
	return fmt.Sprintf("invalid postcode %q: %s", e.Input, e.Reason)
}

// ProviderStatusError is a non-success, non-empty status reported by an
// upstream API inside an otherwise healthy HTTP exchange.
type ProviderStatusError struct {
	Service string
	Status  string
	Message string
}

func (e ProviderStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %s", e.Service, e.Status)
	}
	return fmt.Sprintf("%s returned status %s: %s", e.Service, e.Status, e.Message)
}
