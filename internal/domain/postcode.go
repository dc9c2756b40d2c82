package domain

import (
	"regexp"
	"strings"
)

// UK postcode shape: area (1-2 letters), district (digit, optional
// letter/digit), sector (digit), unit (2 letters). Matched against the
// uppercased form with internal whitespace removed.
var postcodeRe = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]?[0-9][A-Z]{2}$`)

// ValidatePostcode normalizes and validates a free-text UK postcode.
// On success it returns (true, normalized, ""), where normalized is uppercase
// with a single space before the three-character inward code. On failure it
// returns (false, "", reason) with a human-readable reason. Pure function,
// no external calls.
func ValidatePostcode(raw string) (bool, string, string) {
	compact := strings.ToUpper(strings.Join(strings.Fields(strings.TrimSpace(raw)), ""))
	if compact == "" {
		return false, "", "postcode is empty"
	}
	if !postcodeRe.MatchString(compact) {
		return false, "", "does not match UK postcode format (e.g. SW1A 1AA)"
	}
	return true, compact[:len(compact)-3] + " " + compact[len(compact)-3:], ""
}
