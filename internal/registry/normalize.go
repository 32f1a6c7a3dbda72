package registry

import (
	"strings"
	"unicode"
)

// Normalized is the result of identifier normalization. Original is the
// uppercased, trimmed input; Normalized is the IATA-style form providers
// expect. The two are equal when the input was already IATA-style or the
// carrier is unknown.
type Normalized struct {
	Original   string
	Normalized string
	WasICAO    bool
}

// Normalize converts an ICAO-style identifier (3-letter carrier prefix,
// e.g. "AIC101") to its IATA-style form ("AI101") when the carrier is in
// the registry and the remainder is numeric. Unknown or malformed input
// maps to itself; Normalize never fails.
func (r *Registry) Normalize(raw string) Normalized {
	original := strings.ToUpper(strings.TrimSpace(raw))
	n := Normalized{Original: original, Normalized: original}

	if len(original) < 4 {
		return n
	}

	prefix := original[:3]
	rest := original[3:]
	if !isDigits(rest) {
		return n
	}

	airline, ok := r.AirlineByICAO(prefix)
	if !ok || airline.IATA == "" {
		return n
	}

	n.Normalized = airline.IATA + rest
	n.WasICAO = true
	return n
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}
