package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gradplus/internal/domain"
)

const (
	maxPhones      = 5
	minPhoneDigits = 9
	maxPhoneDigits = 15
)

var (
	phoneLabelRegexp = regexp.MustCompile(`(?i)\b(?:telefon|tel|mobitel|mob|gsm)\.?\s*:?\s*(\+?[\d(][\d\s/.\-()]{6,20}\d)`)
	phoneShape       = regexp.MustCompile(`^\+?[\d\s/.\-()]+$`)
	emailRegexp      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	domainShape      = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?[a-z0-9\-]+(?:\.[a-z0-9\-]+)+(?:/\S*)?$`)
	ibanRegexp       = regexp.MustCompile(`\bHR\d{2}(?:\s?\d){17}\b`)
	dateRegexp       = regexp.MustCompile(`\b\d{1,2}\.\s?\d{1,2}\.\s?\d{4}\.?`)
	bankNameRegexp   = regexp.MustCompile(`((?:\p{Lu}[\p{L}\-]*\s+){1,3}(?i:banka|bank)(?:\s+d\.\s?d\.)?)`)
	accountStatus    = regexp.MustCompile(`(?i)\b(aktivan|blokiran|zatvoren|ugašen|neaktivan)\b`)
)

// bankCodes maps the 7-digit bank code inside a HR IBAN to the bank name.
var bankCodes = map[string]string{
	"2360000": "Zagrebačka banka d.d.",
	"2340009": "Privredna banka Zagreb d.d.",
	"2402006": "Erste&Steiermärkische Bank d.d.",
	"2484008": "Raiffeisenbank Austria d.d.",
	"2407000": "OTP banka d.d.",
	"2390001": "Hrvatska poštanska banka d.d.",
	"2500009": "Addiko Bank d.d.",
}

// phones gathers phone numbers from JSON-LD, tel: links, labels and labelled
// text. Entries have at least 9 digits, are unique by digits, at most 5.
func (p *page) phones() []string {
	var candidates []string
	for _, o := range p.orgs {
		candidates = append(candidates, o.Telephone)
	}
	p.doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		candidates = append(candidates, strings.TrimPrefix(href, "tel:"))
	})
	candidates = append(candidates, LabelLookupAll(p.doc, "Telefon", "Tel", "Mobitel", "Mob")...)
	for _, m := range phoneLabelRegexp.FindAllStringSubmatch(p.flat, -1) {
		candidates = append(candidates, m[1])
	}
	return NormalizePhones(candidates)
}

// NormalizePhones validates, de-duplicates and caps a list of phone numbers.
func NormalizePhones(candidates []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range candidates {
		v := collapse(c)
		if !phoneShape.MatchString(v) {
			continue
		}
		digits := digitsOnly(v)
		if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
			continue
		}
		key := phoneKey(digits)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == maxPhones {
			break
		}
	}
	return out
}

// phoneKey folds +385 / 00385 / 0 prefixes so the same number written two
// ways counts once.
func phoneKey(digits string) string {
	switch {
	case strings.HasPrefix(digits, "00385"):
		return digits[5:]
	case strings.HasPrefix(digits, "385"):
		return digits[3:]
	case strings.HasPrefix(digits, "0"):
		return digits[1:]
	}
	return digits
}

func (p *page) email() string {
	valid := func(v string) string {
		v = strings.TrimSpace(strings.TrimPrefix(v, "mailto:"))
		if i := strings.Index(v, "?"); i >= 0 {
			v = v[:i]
		}
		return ValidEmail(v)
	}
	return firstOf(
		func() string { return valid(p.ld(func(o Organization) string { return o.Email })) },
		func() string {
			href, _ := p.doc.Find(`a[href^="mailto:"]`).First().Attr("href")
			return valid(href)
		},
		func() string { return valid(LabelLookup(p.doc, "E-mail", "Email", "E-pošta")) },
		func() string { return valid(emailRegexp.FindString(p.flat)) },
	)
}

// ValidEmail returns the address in v, or "" if v has no '@' or is a URL.
func ValidEmail(v string) string {
	if !strings.Contains(v, "@") {
		return ""
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "http") || strings.HasPrefix(lower, "www.") || strings.Contains(lower, "/") {
		return ""
	}
	return emailRegexp.FindString(v)
}

func (p *page) website() string {
	valid := func(v string) string { return ValidWebsite(v, p.site) }
	return firstOf(
		func() string { return valid(p.ld(func(o Organization) string { return o.URL })) },
		func() string { return valid(LabelLookup(p.doc, "Web", "Web stranica", "Internet stranica", "Web adresa")) },
		func() string {
			var found string
			p.doc.Find(`a[href^="http"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				href, _ := s.Attr("href")
				text := collapse(s.Text())
				// Only anchors that display a domain are company websites;
				// the rest are navigation, ads and social links.
				if !domainShape.MatchString(text) {
					return true
				}
				if v := valid(href); v != "" {
					found = v
					return false
				}
				return true
			})
			return found
		},
	)
}

// ValidWebsite normalises v to a URL and rejects it unless it contains
// "http" and lives outside the scraped site.
func ValidWebsite(v string, site *Site) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, "@") || strings.ContainsAny(v, " \t") {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(v), "www.") {
		v = "http://" + v
	}
	if !strings.Contains(strings.ToLower(v), "http") || !domainShape.MatchString(v) {
		return ""
	}
	if site != nil && site.OwnsURL(v) {
		return ""
	}
	return v
}

// bankAccounts reads every HR IBAN on the page together with the opening
// date, bank and status found on the same row.
func (p *page) bankAccounts() []domain.BankAccount {
	var out []domain.BankAccount
	seen := map[string]bool{}
	for _, line := range strings.Split(p.lines, "\n") {
		for _, raw := range ibanRegexp.FindAllString(line, -1) {
			iban := strings.ReplaceAll(raw, " ", "")
			if seen[iban] {
				continue
			}
			seen[iban] = true
			rest := strings.Replace(line, raw, " ", 1)
			acc := domain.BankAccount{
				IBAN:       iban,
				OpenedDate: orUnknown(strings.TrimSpace(dateRegexp.FindString(rest))),
				BankName:   strings.TrimSpace(match(bankNameRegexp, rest)),
				Status:     orUnknown(strings.ToLower(match(accountStatus, rest))),
			}
			if acc.BankName == "" {
				acc.BankName = orUnknown(bankCodes[iban[4:11]])
			}
			out = append(out, acc)
		}
	}
	return out
}
