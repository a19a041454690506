package extract

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// leafSelector lists the elements that carry label text on registry pages.
const leafSelector = "dt, dd, th, td, span, div, p, li, strong, b, em, label, small, h3, h4, h5, h6"

// maxLabelElementText bounds the text of an element considered a label
// holder; longer elements are containers, not labels.
const maxLabelElementText = 80

var (
	labelMu    sync.Mutex
	labelCache = map[string]*regexp.Regexp{}
)

// labelRegexp matches label as a whole word; group 1 spans the label itself.
func labelRegexp(label string) *regexp.Regexp {
	labelMu.Lock()
	defer labelMu.Unlock()
	if re, ok := labelCache[label]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + regexp.QuoteMeta(label) + `)(?:[^\p{L}\p{N}]|$)`)
	labelCache[label] = re
	return re
}

// LabelLookup finds the first element whose text contains one of labels and
// returns the value that belongs to it, or "" when nothing survives Sanitize.
func LabelLookup(doc *goquery.Document, labels ...string) string {
	var found string
	eachLabeled(doc, labels, func(s *goquery.Selection, label string) bool {
		if v := labeledValue(s, label); v != "" {
			found = v
			return false
		}
		return true
	})
	return found
}

// LabelLookupAll returns the distinct values of every element labelled with
// one of labels, in document order.
func LabelLookupAll(doc *goquery.Document, labels ...string) []string {
	var out []string
	seen := map[string]bool{}
	eachLabeled(doc, labels, func(s *goquery.Selection, label string) bool {
		v := labeledValue(s, label)
		key := strings.ToLower(v)
		if v != "" && !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
		return true
	})
	return out
}

// eachLabeled calls fn for every leaf-ish element mentioning one of labels.
// An element is skipped when one of its child elements mentions the label
// too, so the innermost holder is the one inspected.
func eachLabeled(doc *goquery.Document, labels []string, fn func(*goquery.Selection, string) bool) {
	doc.Find(leafSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapse(s.Text())
		if text == "" || utf8.RuneCountInString(text) > maxLabelElementText {
			return true
		}
		for _, label := range labels {
			re := labelRegexp(label)
			if !re.MatchString(text) {
				continue
			}
			if childMentions(s, re) {
				continue
			}
			return fn(s, label)
		}
		return true
	})
}

func childMentions(s *goquery.Selection, re *regexp.Regexp) bool {
	found := false
	s.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if re.MatchString(collapse(c.Text())) {
			found = true
			return false
		}
		return true
	})
	return found
}

// labeledValue tries, in order: an inline "label: value" split of the
// element or its parent, the structural partner (dt→dd, th→td), the next
// element sibling, and the parent's next sibling.
func labeledValue(s *goquery.Selection, label string) string {
	accept := func(v string) string {
		v = Sanitize(v)
		if v == "" || isBareLabel(v) {
			return ""
		}
		return v
	}
	return firstOf(
		func() string { return accept(inlineValue(collapse(s.Text()), label)) },
		func() string {
			parent := collapse(s.Parent().Text())
			if utf8.RuneCountInString(parent) > MaxCandidateLength {
				return ""
			}
			return accept(inlineValue(parent, label))
		},
		func() string { return accept(structuralValue(s)) },
		func() string { return accept(collapse(s.Next().Text())) },
		func() string { return accept(collapse(s.Parent().Next().Text())) },
	)
}

// inlineValue splits "Label: value" and returns value, or "" when the text
// has no colon right after the label.
func inlineValue(text, label string) string {
	loc := labelRegexp(label).FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	rest := strings.TrimSpace(text[loc[3]:])
	if !strings.HasPrefix(rest, ":") {
		return ""
	}
	return cutAtNextLabel(strings.TrimSpace(rest[1:]))
}

var nextLabel = regexp.MustCompile(`(?i)(?:^|\s)(?:oib|mbs|adresa|sjedište|osnovan[oa]?|djelatnost|veličina|rating|direktor(?:ica)?|vlasni(?:k|ca)|status|telefon|tel\.?|mobitel|e-?mail|web|fax|iban)\s*:`)

// cutAtNextLabel drops a trailing "Label: value" pair that a flattened row
// glued onto the wanted value.
func cutAtNextLabel(v string) string {
	if loc := nextLabel.FindStringIndex(v); loc != nil && loc[0] > 0 {
		return strings.TrimSpace(v[:loc[0]])
	}
	return v
}

func structuralValue(s *goquery.Selection) string {
	switch goquery.NodeName(s) {
	case "dt":
		return collapse(s.NextAllFiltered("dd").First().Text())
	case "th":
		if td := s.NextAllFiltered("td").First(); td.Length() > 0 {
			return collapse(td.Text())
		}
		// Header row layout: the value sits in the same column of the next row.
		idx := s.Index()
		return collapse(s.Parent().Next().Children().Eq(idx).Text())
	}
	return ""
}
