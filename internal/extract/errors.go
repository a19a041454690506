package extract

import "github.com/rotisserie/eris"

// Outcomes that end a lookup without a record. They are expected results of
// best-effort scraping, not faults.
var (
	ErrNoSearchResult     = eris.New("no usable detail link in search results")
	ErrNotACompanyPage    = eris.New("page is not a company detail page")
	ErrIdentifierMismatch = eris.New("extracted OIB does not match the queried OIB")
)
