package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhones(t *testing.T) {
	got := NormalizePhones([]string{
		"+385 1 234 5678",
		"01 234 5678", // same number, national form
		"123 456",     // too short
		"091 111 1111",
		"zovite nas",
		"091 222 2222",
		"091 333 3333",
		"091 444 4444",
		"091 555 5555", // over the cap
	})

	assert.Equal(t, []string{"+385 1 234 5678", "091 111 1111", "091 222 2222", "091 333 3333", "091 444 4444"}, got)
	assert.LessOrEqual(t, len(got), maxPhones)
	for _, p := range got {
		assert.GreaterOrEqual(t, len(digitsOnly(p)), minPhoneDigits)
	}
}

func TestPhones_FromPage(t *testing.T) {
	p := newPage(docFrom(t, `<html><body>
<p>OIB 12345678901</p>
<a href="tel:+38521555666">Nazovite</a>
<p>Telefon: 021 555 666</p>
<p>Fax: 021 555 667</p>
<p>Mobitel: 098/765-4321</p>
</body></html>`), testSite(t))

	assert.Equal(t, []string{"+38521555666", "098/765-4321"}, p.phones())
}

func TestValidEmail(t *testing.T) {
	assert.Equal(t, "info@tvrtka.hr", ValidEmail("info@tvrtka.hr"))
	assert.Equal(t, "", ValidEmail("tvrtka.hr"))
	assert.Equal(t, "", ValidEmail("https://tvrtka.hr/kontakt?mail=info@tvrtka.hr"))
	assert.Equal(t, "", ValidEmail("www.tvrtka.hr/@info"))
}

func TestEmail_FromMailto(t *testing.T) {
	p := newPage(docFrom(t, `<html><body><p>OIB 12345678901</p><a href="mailto:ured@tvrtka.hr?subject=Upit">Pišite nam</a></body></html>`), testSite(t))
	assert.Equal(t, "ured@tvrtka.hr", p.email())
}

func TestValidWebsite(t *testing.T) {
	site := testSite(t)
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.tvrtka.hr", "https://www.tvrtka.hr"},
		{"www.tvrtka.hr", "http://www.tvrtka.hr"},
		{"tvrtka.hr", ""},
		{"https://www.companywall.hr/tvrtka/x/1", ""},
		{"https://companywall.hr", ""},
		{"info@tvrtka.hr", ""},
		{"https://tvrtka.hr nije dostupno", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidWebsite(tt.in, site))
		})
	}
}

func TestWebsite_ExternalAnchor(t *testing.T) {
	p := newPage(docFrom(t, `<html><body>
<p>OIB 12345678901</p>
<a href="https://www.companywall.hr/pretraga">companywall.hr</a>
<a href="https://facebook.com/share">Podijeli</a>
<a href="https://www.tvrtka.hr/">www.tvrtka.hr</a>
</body></html>`), testSite(t))

	assert.Equal(t, "https://www.tvrtka.hr/", p.website())
}

func TestBankAccounts_CodeFallback(t *testing.T) {
	p := newPage(docFrom(t, `<html><body>
<p>OIB 12345678901</p>
<table><tr><td>HR12 2340 0091 1100 0000 1</td><td>blokiran</td></tr></table>
</body></html>`), testSite(t))

	got := p.bankAccounts()
	if assert.Len(t, got, 1) {
		assert.Equal(t, "HR1223400091100000001", got[0].IBAN)
		assert.Equal(t, "Privredna banka Zagreb d.d.", got[0].BankName)
		assert.Equal(t, "blokiran", got[0].Status)
		assert.Equal(t, Unknown, got[0].OpenedDate)
	}
}
