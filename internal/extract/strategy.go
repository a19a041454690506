package extract

import "gradplus/internal/domain"

// Unknown is the sentinel for a non-critical field nothing could fill.
const Unknown = domain.Unknown

// strategy yields a candidate value, or "" when it has nothing.
type strategy func() string

// firstOf evaluates strategies left to right and returns the first non-empty
// result.
func firstOf(strategies ...strategy) string {
	for _, s := range strategies {
		if v := s(); v != "" {
			return v
		}
	}
	return ""
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}
