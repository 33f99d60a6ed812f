package phone

import (
	"errors"
	"strings"
)

// ErrInvalidNumber indicates the input cannot be resolved to a canonical number.
var ErrInvalidNumber = errors.New("invalid phone number")

const subscriberDigits = 10

// DefaultRegion is the country calling code used when none is configured.
const DefaultRegion = "91"

// Normalizer rewrites phone numbers into the canonical "+<region><digits>" form
// for a single region. The canonical string is the sole lookup key for
// identities, contacts and spam reports, so every number must pass through
// here before touching a store.
type Normalizer struct {
	region string
}

// NewNormalizer builds a normalizer for the given country calling code.
func NewNormalizer(region string) Normalizer {
	if region == "" {
		region = DefaultRegion
	}
	return Normalizer{region: region}
}

// Normalize rewrites accepted input forms to canonical form. Accepted inputs
// for region 91: "9876543210", "919876543210", "+919876543210". Unrecognized
// input is returned unchanged so Validate can reject it.
func (n Normalizer) Normalize(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.HasPrefix(s, "+") {
		return s
	}
	if strings.HasPrefix(s, n.region) && len(s) == len(n.region)+subscriberDigits && isDigits(s) {
		return "+" + s
	}
	if len(s) == subscriberDigits && isDigits(s) {
		return "+" + n.region + s
	}
	return s
}

// Validate reports whether s is already in canonical form for this region.
func (n Normalizer) Validate(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "+"+n.region) {
		return false
	}
	subscriber := s[len(n.region)+1:]
	return len(subscriber) == subscriberDigits && isDigits(subscriber)
}

// Canonicalize normalizes then validates, returning ErrInvalidNumber when the
// input cannot be brought into canonical form.
func (n Normalizer) Canonicalize(raw string) (string, error) {
	s := n.Normalize(raw)
	if !n.Validate(s) {
		return "", ErrInvalidNumber
	}
	return s, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
