package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCandidateLength is the longest value accepted into a record field.
const MaxCandidateLength = 140

const maxDescriptionLength = 600

// noisePatterns match page furniture that sits next to real values: login
// walls, cookie banners, masked premium values, "show more" links.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)prijav(i|ite|a)\b`),
	regexp.MustCompile(`(?i)\bregistr(iraj|acij)`),
	regexp.MustCompile(`(?i)kolačić|cookie`),
	regexp.MustCompile(`(?i)učitavanje|loading`),
	regexp.MustCompile(`(?i)pretplat|premium|\bpro paket`),
	regexp.MustCompile(`\*{3,}|•{3,}|x{5,}`),
	regexp.MustCompile(`(?i)prikaži (više|sve|detalje)|saznaj više|pogledaj (više|sve)`),
	regexp.MustCompile(`(?i)javascript|function\s*\(`),
	regexp.MustCompile(`(?i)kupi(te)? (izvještaj|izvješće|paket)`),
	regexp.MustCompile(`(?i)dostupno (samo )?(za|uz)\b`),
	regexp.MustCompile(`(?i)^nema podataka\.?$|^n/?a$|^nepoznat[oa]?$`),
	regexp.MustCompile(`[{}<>]`),
}

// labelWords are the single-word labels of the detail page. A candidate that
// mentions more than one of them has swallowed a neighbouring label/value pair.
var labelWords = map[string]bool{
	"oib": true, "mbs": true, "adresa": true, "sjedište": true,
	"osnovano": true, "osnovana": true, "osnovan": true, "djelatnost": true,
	"veličina": true, "rating": true, "direktor": true, "direktorica": true,
	"vlasnik": true, "vlasnica": true, "likvidator": true, "predsjednica": true,
	"predsjednik": true, "član": true, "prokurist": true, "status": true, "telefon": true, "mobitel": true,
	"e-mail": true, "email": true, "web": true, "fax": true, "iban": true,
	"prihodi": true, "rashodi": true,
}

// Sanitize returns the cleaned candidate, or "" when it must be rejected: too
// long, empty or a placeholder, matching a noise pattern, or mentioning more
// than one label word.
func Sanitize(candidate string) string {
	v := collapse(candidate)
	v = strings.Trim(v, " :;,|–-")
	if v == "" || v == Unknown {
		return ""
	}
	if utf8.RuneCountInString(v) > MaxCandidateLength {
		return ""
	}
	if isNoise(v) {
		return ""
	}
	if countLabelWords(v) > 1 {
		return ""
	}
	return v
}

// sanitizeLong is the gate for prose fields such as the description, which
// legitimately run past MaxCandidateLength and mention label words.
func sanitizeLong(candidate string) string {
	v := collapse(candidate)
	if v == "" || v == Unknown || utf8.RuneCountInString(v) > maxDescriptionLength {
		return ""
	}
	if isNoise(v) {
		return ""
	}
	return v
}

func isNoise(v string) bool {
	for _, re := range noisePatterns {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

func countLabelWords(v string) int {
	n := 0
	for _, w := range words(v) {
		if labelWords[w] {
			n++
		}
	}
	return n
}

func words(v string) []string {
	return strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-')
	})
}

// isBareLabel reports whether v is just a label (optionally with a colon),
// i.e. a neighbouring label cell rather than a value.
func isBareLabel(v string) bool {
	ws := words(v)
	if len(ws) == 0 || len(ws) > 3 {
		return false
	}
	if !labelWords[ws[0]] {
		return false
	}
	return len(ws) == 1 || strings.HasSuffix(strings.TrimSpace(v), ":")
}

// cutAtLabelWord truncates v before the first label word, for regex matches
// that ran on into the next field of the flattened text.
func cutAtLabelWord(v string) string {
	fields := strings.Fields(v)
	for i, f := range fields {
		if labelWords[strings.ToLower(strings.Trim(f, ":.,;"))] {
			return strings.Join(fields[:i], " ")
		}
	}
	return v
}
