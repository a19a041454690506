package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Organization holds the fields read from a schema.org Organization or
// LocalBusiness object.
type Organization struct {
	Name         string
	LegalName    string
	Address      string
	Telephone    string
	Email        string
	URL          string
	FoundingDate string
	Description  string
	TaxID        string
}

var organizationTypes = map[string]bool{
	"organization":  true,
	"localbusiness": true,
	"corporation":   true,
	"company":       true,
}

// ParseJSONLD returns every organization described by the document's
// application/ld+json blocks, including objects nested in @graph and arrays.
// Malformed blocks are repaired once before giving up on them.
func ParseJSONLD(doc *goquery.Document) []Organization {
	var out []Organization
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			repaired, rerr := jsonrepair.RepairJSON(raw)
			if rerr != nil {
				return
			}
			if err := json.Unmarshal([]byte(repaired), &v); err != nil {
				return
			}
		}
		collectOrganizations(v, &out)
	})
	return out
}

func collectOrganizations(v any, out *[]Organization) {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			collectOrganizations(item, out)
		}
	case map[string]any:
		if graph, ok := t["@graph"]; ok {
			collectOrganizations(graph, out)
		}
		if isOrganization(t["@type"]) {
			*out = append(*out, toOrganization(t))
		}
	}
}

func isOrganization(typ any) bool {
	switch t := typ.(type) {
	case string:
		return organizationTypes[strings.ToLower(t)]
	case []any:
		for _, item := range t {
			if isOrganization(item) {
				return true
			}
		}
	}
	return false
}

func toOrganization(m map[string]any) Organization {
	return Organization{
		Name:         str(m["name"]),
		LegalName:    str(m["legalName"]),
		Address:      address(m["address"]),
		Telephone:    str(m["telephone"]),
		Email:        strings.TrimPrefix(str(m["email"]), "mailto:"),
		URL:          str(m["url"]),
		FoundingDate: str(m["foundingDate"]),
		Description:  str(m["description"]),
		TaxID:        firstNonEmpty(str(m["taxID"]), str(m["vatID"])),
	}
}

func address(v any) string {
	switch t := v.(type) {
	case string:
		return collapse(t)
	case []any:
		if len(t) > 0 {
			return address(t[0])
		}
	case map[string]any:
		var parts []string
		street := str(t["streetAddress"])
		if street != "" {
			parts = append(parts, street)
		}
		locality := strings.TrimSpace(str(t["postalCode"]) + " " + str(t["addressLocality"]))
		if locality != "" {
			parts = append(parts, locality)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// str flattens a JSON-LD scalar; numbers show up for telephone and taxID.
func str(v any) string {
	switch t := v.(type) {
	case string:
		return collapse(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		if len(t) > 0 {
			return str(t[0])
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
