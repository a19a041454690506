package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// page is a parsed detail page shared by the field extractors.
type page struct {
	doc   *goquery.Document
	flat  string // whitespace-collapsed visible text
	lines string // one line per block element / table row
	orgs  []Organization
	site  *Site
}

func newPage(doc *goquery.Document, site *Site) *page {
	flat, lines := pageText(doc)
	return &page{doc: doc, flat: flat, lines: lines, orgs: ParseJSONLD(doc), site: site}
}

// ld returns the first non-empty value of field across JSON-LD organizations.
func (p *page) ld(field func(Organization) string) string {
	for _, o := range p.orgs {
		if v := field(o); v != "" {
			return v
		}
	}
	return ""
}

// match returns group 1 of the first match of re in text.
func match(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

var (
	oibRegexp      = regexp.MustCompile(`OIB\s*:?\s*(\d{11})\b`)
	elevenDigits   = regexp.MustCompile(`^\d{11}$`)
	anyOIBToken    = regexp.MustCompile(`(?:^|\D)\d{11}(?:\D|$)`)
	mbsRegexp      = regexp.MustCompile(`(?i)\bMBS\s*:?\s*(\d[\d .\-/]{4,16}\d)`)
	mbsShape       = regexp.MustCompile(`^\d[\d .\-/]*\d$`)
	foundedRegexp  = regexp.MustCompile(`(?i)(?:osnovan[oa]?|datum osnivanja)\s*:?\s*(\d{1,2}\.\s?\d{1,2}\.\s?\d{4}\.?|\d{4}\.?)`)
	statusRegexp   = regexp.MustCompile(`(?i)\bstatus\s*(?:tvrtke|subjekta)?\s*:?\s*(aktivn[ao]|neaktivn[ao]|u likvidaciji|u stečaju|u predstečaju|brisan[ao]|ugašen[ao])`)
	activityRegexp = regexp.MustCompile(`(?i)(?:djelatnost|nkd)[^:\n\d]{0,20}:?[ \t]*\n?[ \t]*(\d{2}\.\d{1,2}[^\n]{3,120})`)
	sizeRegexp     = regexp.MustCompile(`(?i)veličina\s*(?:subjekta|tvrtke)?\s*:?\s*(mikro|mal[io]|srednj[ie]|velik[io])`)
	ratingRegexp   = regexp.MustCompile(`(?i)\b(?:rating|bonitet(?:na ocjena)?)\s*:?\s*([a-e]{1,3}[+-]?)(?:\s|$)`)
	addressRegexp  = regexp.MustCompile(`(?i)(?:adresa|sjedište)\s*:?[ \t]*\n?[ \t]*([^\n]{5,140})`)
	ownerRegexp    = regexp.MustCompile(`(?i:vlasni(?:k|ca)|osniva(?:č|čica)|član društva)\s*:?\s*(\p{Lu}[\p{L}.'\-]+(?:\s+\p{Lu}[\p{L}.'\-]+){0,4})`)
	directorRegexp = regexp.MustCompile(`(?i:direktor(?:ica)?|predsjedni(?:k|ca) uprave|predsjednica|član uprave|likvidator|prokurist)\s*:?\s*(\p{Lu}[\p{L}.'\-]+(?:\s+\p{Lu}[\p{L}.'\-]+){1,4})`)
	estateRegexp   = regexp.MustCompile(`(?i)nekretnin[ae]\s*:?[ \t]*\n?[ \t]*([^\n]{1,120})`)
	taxDebtRegexp  = regexp.MustCompile(`(?i)(?:dug(?:ovanje)? prema (?:državi|poreznoj upravi)|porezni dug)\s*:?[ \t]*\n?[ \t]*([^\n]{1,80})`)
	titleSuffix    = regexp.MustCompile(`\s+[|–—-]\s+.*$`)
)

var (
	ownerLabels    = []string{"Vlasnik", "Vlasnica", "Osnivač", "Član društva"}
	directorLabels = []string{"Direktor", "Direktorica", "Predsjednik uprave", "Predsjednica uprave", "Predsjednica", "Član uprave", "Likvidator", "Prokurist"}
)

// nationalID prefers the shape-validated "OIB: nnnnnnnnnnn" match in the
// flattened text; a labelled value is used only if it is exactly 11 digits.
func (p *page) nationalID() string {
	return firstOf(
		func() string { return match(oibRegexp, p.flat) },
		func() string {
			v := LabelLookup(p.doc, "OIB")
			if elevenDigits.MatchString(v) {
				return v
			}
			return ""
		},
		func() string {
			v := digitsOnly(p.ld(func(o Organization) string { return o.TaxID }))
			if elevenDigits.MatchString(v) {
				return v
			}
			return ""
		},
	)
}

// looksLikeCompanyPage reports whether the page has an 11-digit token or at
// least mentions the OIB label.
func (p *page) looksLikeCompanyPage() bool {
	return anyOIBToken.MatchString(p.flat) || strings.Contains(p.flat, "OIB")
}

// registryNumber returns the MBS, discarding values whose digits equal the
// OIB: those come from a label/value pair read one cell off.
func (p *page) registryNumber(oib string) string {
	valid := func(v string) string {
		v = strings.TrimSpace(v)
		if !mbsShape.MatchString(v) {
			return ""
		}
		if oib != "" && digitsOnly(v) == oib {
			return ""
		}
		return v
	}
	return firstOf(
		func() string { return valid(LabelLookup(p.doc, "MBS")) },
		func() string { return valid(match(mbsRegexp, p.flat)) },
	)
}

func (p *page) name(query string) string {
	return firstOf(
		func() string { return Sanitize(p.ld(func(o Organization) string { return o.Name })) },
		func() string { return Sanitize(p.doc.Find("h1").First().Text()) },
		func() string {
			v, _ := p.doc.Find(`meta[property="og:title"]`).Attr("content")
			return Sanitize(titleSuffix.ReplaceAllString(v, ""))
		},
		func() string { return Sanitize(titleSuffix.ReplaceAllString(p.doc.Find("title").First().Text(), "")) },
		func() string {
			if elevenDigits.MatchString(strings.TrimSpace(query)) {
				return ""
			}
			return Sanitize(query)
		},
	)
}

func (p *page) fullName(name string) string {
	v := firstOf(
		func() string { return Sanitize(p.ld(func(o Organization) string { return o.LegalName })) },
		func() string { return LabelLookup(p.doc, "Puni naziv", "Pravni naziv", "Naziv tvrtke") },
	)
	if v == "" {
		return name
	}
	return v
}

func (p *page) address() string {
	return firstOf(
		func() string { return Sanitize(p.ld(func(o Organization) string { return o.Address })) },
		func() string { return LabelLookup(p.doc, "Adresa", "Sjedište") },
		func() string { return Sanitize(cutAtNextLabel(match(addressRegexp, p.lines))) },
	)
}

func (p *page) founded() string {
	return firstOf(
		func() string { return Sanitize(p.ld(func(o Organization) string { return o.FoundingDate })) },
		func() string { return LabelLookup(p.doc, "Osnovano", "Osnovana", "Datum osnivanja") },
		func() string { return match(foundedRegexp, p.flat) },
	)
}

func (p *page) status() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Status") },
		func() string { return match(statusRegexp, p.flat) },
	)
}

func (p *page) activity() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Djelatnost", "Pretežita djelatnost", "NKD") },
		func() string { return Sanitize(cutAtNextLabel(match(activityRegexp, p.lines))) },
	)
}

func (p *page) size() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Veličina") },
		func() string { return match(sizeRegexp, p.flat) },
	)
}

func (p *page) rating() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Rating", "Bonitet") },
		func() string { return strings.ToUpper(match(ratingRegexp, p.flat)) },
	)
}

func (p *page) owner() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, ownerLabels...) },
		func() string { return Sanitize(cutAtLabelWord(match(ownerRegexp, p.flat))) },
	)
}

// directors collects every distinct role holder; empty entries are dropped.
// The flattened-text regex is only consulted when no labelled value exists.
func (p *page) directors() []string {
	out := LabelLookupAll(p.doc, directorLabels...)
	if len(out) > 0 {
		return compact(out)
	}
	seen := map[string]bool{}
	for _, m := range directorRegexp.FindAllStringSubmatch(p.flat, -1) {
		v := Sanitize(cutAtLabelWord(m[1]))
		if v != "" && !seen[strings.ToLower(v)] {
			seen[strings.ToLower(v)] = true
			out = append(out, v)
		}
	}
	return compact(out)
}

func (p *page) description() string {
	return firstOf(
		func() string { return sanitizeLong(p.ld(func(o Organization) string { return o.Description })) },
		func() string {
			v, _ := p.doc.Find(`meta[name="description"]`).Attr("content")
			return sanitizeLong(v)
		},
		func() string { return LabelLookup(p.doc, "Opis djelatnosti", "Opis") },
	)
}

func (p *page) realEstate() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Nekretnine", "Vlasništvo nekretnina") },
		func() string { return Sanitize(match(estateRegexp, p.lines)) },
	)
}

func (p *page) taxDebt() string {
	return firstOf(
		func() string { return LabelLookup(p.doc, "Dug prema državi", "Dugovanje prema državi", "Porezni dug") },
		func() string { return Sanitize(match(taxDebtRegexp, p.lines)) },
	)
}

var (
	blockadeNegations = []string{"nije u blokadi", "nema blokad", "bez blokade", "nije blokiran", "ne nalazi se u blokadi", "nema blokiranih"}
	// Positives must start a word: "deblokiran" means unblocked.
	blockadePositive = regexp.MustCompile(`(?:^|\P{L})(?:u blokadi|blokiran|blokada računa|blokirani račun)`)
)

// blocked is false whenever a negation appears anywhere on the page, even if
// a positive phrase appears elsewhere.
func (p *page) blocked() bool {
	text := strings.ToLower(p.flat)
	for _, n := range blockadeNegations {
		if strings.Contains(text, n) {
			return false
		}
	}
	return blockadePositive.MatchString(text)
}

func compact(vals []string) []string {
	out := vals[:0]
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
