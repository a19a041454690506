package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPage = `<html><head>
<title>Infobip d.o.o. | CompanyWall</title>
<meta name="description" content="Infobip je tvrtka za komunikacijske platforme.">
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
 {"@type":"WebPage","name":"Infobip d.o.o. - podaci"},
 {"@type":"Organization","name":"Infobip d.o.o.","legalName":"INFOBIP d.o.o. za informatičke usluge",
  "telephone":"+385 1 234 5678","email":"info@infobip.com","url":"https://www.infobip.com",
  "address":{"@type":"PostalAddress","streetAddress":"Zagrebačka 81","postalCode":"52215","addressLocality":"Vodnjan"}}
]}
</script>
</head><body>
<h1>Infobip d.o.o.</h1>
<dl>
 <dt>OIB</dt> <dd>29524210204</dd>
 <dt>MBS</dt> <dd>040221438</dd>
 <dt>Osnovano</dt> <dd>14.03.2006.</dd>
 <dt>Status</dt> <dd>Aktivan</dd>
 <dt>Djelatnost</dt> <dd>62.01 Računalno programiranje</dd>
 <dt>Veličina</dt> <dd>Veliki</dd>
 <dt>Rating</dt> <dd>A+</dd>
</dl>
<table>
 <tr><th>Direktor</th><td>Silvio Kutić</td></tr>
 <tr><th>Član uprave</th><td>Izabel Jelenić</td></tr>
</table>
<p>Vlasnik: Infobip Limited</p>
<p>Tel: 01 234 5678</p>
<p>Mob: 091 555 1234</p>
<p>Račun nije u blokadi.</p>
<table>
 <tr><th>Godina</th><th>2023</th><th>2022</th><th>2021</th></tr>
 <tr><td>Ukupni prihodi</td><td>1.000.000,00</td><td>900.000,00</td><td>800.000,00</td></tr>
 <tr><td>Prosječan broj radnika</td><td>120</td><td>110</td><td>100</td></tr>
</table>
<div><p>HR1723600001101234565 otvoren 01.02.2010. Zagrebačka banka d.d. aktivan</p></div>
<a href="https://www.companywall.hr/tvrtka/infobip-doo/MMEG9Bf">Infobip</a>
</body></html>`

func TestExtract_DetailPage(t *testing.T) {
	c, err := Extract(detailPage, "Infobip", testSite(t))
	require.NoError(t, err)

	assert.Equal(t, "Infobip d.o.o.", c.Name)
	assert.Equal(t, "INFOBIP d.o.o. za informatičke usluge", c.FullName)
	assert.Equal(t, "29524210204", c.NationalID)
	assert.Equal(t, "040221438", c.RegistryNumber)
	assert.Equal(t, "Zagrebačka 81, 52215 Vodnjan", c.Address)
	assert.Equal(t, "14.03.2006.", c.Founded)
	assert.Equal(t, "Aktivan", c.Status)
	assert.Equal(t, "62.01 Računalno programiranje", c.Activity)
	assert.Equal(t, "Veliki", c.Size)
	assert.Equal(t, "A+", c.Rating)
	assert.False(t, c.Blocked)
	assert.Equal(t, "+385 1 234 5678", c.Phone)
	assert.Equal(t, []string{"+385 1 234 5678", "091 555 1234"}, c.Phones)
	assert.Equal(t, "info@infobip.com", c.Email)
	assert.Equal(t, "https://www.infobip.com", c.Website)
	assert.Equal(t, "Infobip Limited", c.Owner)
	assert.Equal(t, []string{"Silvio Kutić", "Izabel Jelenić"}, c.Directors)
	assert.Equal(t, "Infobip je tvrtka za komunikacijske platforme.", c.Description)
	assert.Equal(t, Unknown, c.RealEstate)
	assert.Equal(t, Unknown, c.TaxDebt)
	assert.False(t, c.RetrievedAt.IsZero())

	require.Len(t, c.Financials, 3)
	assert.Equal(t, 2023, c.Financials[0].Year)
	assert.InDelta(t, 1000000.0, c.Financials[0].Income, 0.001)
	assert.Equal(t, 120, c.Financials[0].EmployeeCount)
	assert.Equal(t, 2021, c.Financials[2].Year)

	require.Len(t, c.BankAccounts, 1)
	acc := c.BankAccounts[0]
	assert.Equal(t, "HR1723600001101234565", acc.IBAN)
	assert.Equal(t, "01.02.2010.", acc.OpenedDate)
	assert.Equal(t, "Zagrebačka banka d.d.", acc.BankName)
	assert.Equal(t, "aktivan", acc.Status)
}

func TestExtract_IdentifierQuery(t *testing.T) {
	c, err := Extract(detailPage, "29524210204", testSite(t))
	require.NoError(t, err)
	assert.Equal(t, "29524210204", c.NationalID)

	c, err = Extract(detailPage, "12345678901", testSite(t))
	assert.Nil(t, c)
	assert.True(t, eris.Is(err, ErrIdentifierMismatch))
}

func TestExtract_OIBFromFlattenedText(t *testing.T) {
	page := `<html><body><h1>Test d.o.o.</h1><div>Podaci o subjektu, OIB: 12345678901, Zagreb</div></body></html>`

	c, err := Extract(page, "Test", testSite(t))
	require.NoError(t, err)
	assert.Equal(t, "12345678901", c.NationalID)
	assert.Equal(t, Unknown, c.RegistryNumber)
	assert.Equal(t, Unknown, c.Phone)
	assert.Empty(t, c.Phones)
	assert.Empty(t, c.Financials)
}

func TestExtract_NotACompanyPage(t *testing.T) {
	page := `<html><body><h1>Pretraga</h1><p>Nema rezultata za traženi pojam.</p></body></html>`

	c, err := Extract(page, "Nepostojeća tvrtka", testSite(t))
	assert.Nil(t, c)
	assert.True(t, eris.Is(err, ErrNotACompanyPage))
}

func TestExtract_NoCompanyName(t *testing.T) {
	page := `<html><body><p>OIB: 29524210204</p></body></html>`

	c, err := Extract(page, "29524210204", testSite(t))
	assert.Nil(t, c)
	assert.True(t, eris.Is(err, ErrNotACompanyPage))
}

func TestExtract_RegistryNumberEqualToOIBIsDiscarded(t *testing.T) {
	page := `<html><body><h1>Kopija d.o.o.</h1>
<dl><dt>OIB</dt><dd>12345678901</dd><dt>MBS</dt><dd>12345678901</dd></dl></body></html>`

	c, err := Extract(page, "Kopija", testSite(t))
	require.NoError(t, err)
	assert.Equal(t, "12345678901", c.NationalID)
	assert.Equal(t, Unknown, c.RegistryNumber)
}

func TestExtract_LabelledOIBOfWrongShapeIsIgnored(t *testing.T) {
	page := `<html><body><h1>Kratki d.o.o.</h1>
<dl><dt>OIB</dt><dd>1234-5678</dd><dt>MBS</dt><dd>080012345</dd></dl></body></html>`

	c, err := Extract(page, "Kratki", testSite(t))
	require.NoError(t, err)
	assert.Empty(t, c.NationalID)
	assert.Equal(t, "080012345", c.RegistryNumber)
}

func TestBlocked(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"negation", "Račun nije u blokadi.", false},
		{"positive", "Poslovni račun je u blokadi od 2023.", true},
		{"negation wins over positive elsewhere", "Povijest: račun je bio u blokadi. Trenutno: nije u blokadi.", false},
		{"negation before positive", "Nije u blokadi. Blokada računa: nema zapisa o tome da je blokiran.", false},
		{"nothing", "Aktivan subjekt.", false},
		{"unblocked is not blocked", "Račun deblokiran 12.03.2023.", false},
		{"blocked at start of text", "Blokiran račun od 01.01.2024.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPage(docFrom(t, "<html><body><p>OIB 12345678901</p><p>"+tt.text+"</p></body></html>"), testSite(t))
			assert.Equal(t, tt.want, p.blocked())
		})
	}
}

func TestDirectors_RegexFallback(t *testing.T) {
	p := newPage(docFrom(t, `<html><body><p>OIB 12345678901. Direktor Ivan Horvat, Likvidator Ana Marić Status aktivan</p></body></html>`), testSite(t))
	assert.Equal(t, []string{"Ivan Horvat", "Ana Marić"}, p.directors())
}

func docFrom(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

func testSite(t *testing.T) *Site {
	t.Helper()
	site, err := NewSite("https://www.companywall.hr", "https://www.companywall.hr/pretraga?n={query}", `/tvrtka/[^/?#]+/[^/?#]+`)
	require.NoError(t, err)
	return site
}
