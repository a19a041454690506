package extract

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

// IsNationalID reports whether s is an 11-digit OIB.
func IsNationalID(s string) bool {
	return elevenDigits.MatchString(strings.TrimSpace(s))
}

// Extract parses a detail page body and builds a company record from it; see
// ExtractDocument for the rejection rules.
func Extract(body, query string, site *Site) (*domain.Company, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "parse detail page")
	}
	return ExtractDocument(doc, query, site)
}

// ExtractDocument builds a company record from a parsed detail page. It
// returns ErrNotACompanyPage when the page has neither an 11-digit token nor
// the word "OIB", or when no company name can be found, and
// ErrIdentifierMismatch when query is an OIB that differs from the one on the
// page. Fields no strategy could fill hold Unknown; a page without a valid OIB
// yields a record with an empty NationalID.
func ExtractDocument(doc *goquery.Document, query string, site *Site) (*domain.Company, error) {
	p := newPage(doc, site)
	if !p.looksLikeCompanyPage() {
		return nil, ErrNotACompanyPage
	}

	oib := p.nationalID()
	if q := strings.TrimSpace(query); IsNationalID(q) && oib != q {
		return nil, eris.Wrapf(ErrIdentifierMismatch, "queried %s, page has %q", q, oib)
	}
	name := p.name(query)
	if name == "" {
		return nil, eris.Wrap(ErrNotACompanyPage, "no company name")
	}

	phones := p.phones()
	phone := Unknown
	if len(phones) > 0 {
		phone = phones[0]
	}

	return &domain.Company{
		Name:           name,
		FullName:       p.fullName(name),
		NationalID:     oib,
		RegistryNumber: orUnknown(p.registryNumber(oib)),
		Address:        orUnknown(p.address()),
		Founded:        orUnknown(p.founded()),
		Status:         orUnknown(p.status()),
		Activity:       orUnknown(p.activity()),
		Size:           orUnknown(p.size()),
		Rating:         orUnknown(p.rating()),
		Blocked:        p.blocked(),
		Phone:          phone,
		Phones:         phones,
		Email:          orUnknown(p.email()),
		Website:        orUnknown(p.website()),
		Owner:          orUnknown(p.owner()),
		Directors:      p.directors(),
		Financials:     ExtractFinancials(p.lines),
		Description:    orUnknown(p.description()),
		BankAccounts:   p.bankAccounts(),
		RealEstate:     orUnknown(p.realEstate()),
		TaxDebt:        orUnknown(p.taxDebt()),
		RetrievedAt:    time.Now().UTC(),
	}, nil
}
