package extract

import (
	"strconv"
	"strings"
)

// ParseAmount parses a number written the Croatian way. With both '.' and
// ',' present the dot groups thousands and the comma is the decimal mark; a
// lone ',' is the decimal mark; dots without a comma group thousands. Any
// other character apart from a leading minus is noise. Unparseable input
// yields 0.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-") || strings.HasPrefix(s, "−")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	case hasDot:
		s = strings.ReplaceAll(s, ".", "")
	}

	var b strings.Builder
	seenPoint := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if neg {
		f = -f
	}
	return f
}
