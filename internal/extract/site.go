package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/publicsuffix"
)

// Site describes the registry site being scraped.
type Site struct {
	BaseURL        *url.URL
	SearchTemplate string // contains {query}
	DetailPattern  *regexp.Regexp

	// ResultItemSelector matches one search hit container.
	ResultItemSelector string
}

const defaultResultItemSelector = ".search-result, .result-item, .company-item, .list-group-item, .card"

func NewSite(baseURL, searchTemplate, detailPattern string) (*Site, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, eris.Errorf("invalid site base url %q", baseURL)
	}
	if !strings.Contains(searchTemplate, "{query}") {
		return nil, eris.Errorf("search template %q has no {query} placeholder", searchTemplate)
	}
	re, err := regexp.Compile(detailPattern)
	if err != nil {
		return nil, eris.Wrap(err, "compile detail path pattern")
	}
	return &Site{
		BaseURL:            base,
		SearchTemplate:     searchTemplate,
		DetailPattern:      re,
		ResultItemSelector: defaultResultItemSelector,
	}, nil
}

func (s *Site) SearchURL(query string) string {
	return strings.ReplaceAll(s.SearchTemplate, "{query}", url.QueryEscape(strings.TrimSpace(query)))
}

// Resolve turns an href found on the site into an absolute URL.
func (s *Site) Resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return s.BaseURL.ResolveReference(ref).String()
}

// IsDetailHref reports whether href points at a company detail page.
func (s *Site) IsDetailHref(href string) bool {
	return href != "" && s.DetailPattern.MatchString(href)
}

// OwnsURL reports whether raw points back at the scraped site, comparing
// registrable domains so www. and sub-domains count as the same site.
func (s *Site) OwnsURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return false
	}
	return registrable(u.Hostname()) == registrable(s.BaseURL.Hostname())
}

func registrable(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if r, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return r
	}
	return host
}
