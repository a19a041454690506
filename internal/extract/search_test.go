package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	pages map[string]string
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	body, ok := f.pages[url]
	if !ok {
		return "", errors.New("not found")
	}
	return body, nil
}

const resultsPage = `<html><body>
<a href="/pretraga?n=Infobip&page=2">Sljedeća stranica</a>
<div class="search-result">
  <a href="/tvrtka/abc-doo/AAA111">ABC d.o.o.</a>
  <p>Zagreb, računalno programiranje</p>
</div>
<div class="search-result">
  <a href="/tvrtka/infobip-doo/MMEG9Bf">INFOBIP d.o.o.</a>
  <p>Vodnjan, OIB 29524210204</p>
</div>
</body></html>`

func TestPickDetailURL_PrefersMatchingContainer(t *testing.T) {
	got, err := PickDetailURL(resultsPage, testSite(t), "Infobip")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/infobip-doo/MMEG9Bf", got)
}

func TestPickDetailURL_MatchesIdentifierQuery(t *testing.T) {
	got, err := PickDetailURL(resultsPage, testSite(t), "29524210204")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/infobip-doo/MMEG9Bf", got)
}

func TestPickDetailURL_FallsBackToFirstResultItem(t *testing.T) {
	got, err := PickDetailURL(resultsPage, testSite(t), "Nepoznata tvrtka")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/abc-doo/AAA111", got)
}

func TestPickDetailURL_BareAnchors(t *testing.T) {
	page := `<html><body><ul>
<li><a href="https://www.companywall.hr/tvrtka/prva-doo/P1">Prva d.o.o.</a></li>
<li><a href="/tvrtka/druga-doo/D2">Druga d.o.o.</a> Split</li>
</ul></body></html>`

	got, err := PickDetailURL(page, testSite(t), "split")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/druga-doo/D2", got)

	got, err = PickDetailURL(page, testSite(t), "Osijek")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/prva-doo/P1", got)
}

func TestPickDetailURL_NoCandidates(t *testing.T) {
	_, err := PickDetailURL(`<html><body><p>Nema rezultata</p><a href="/o-nama">O nama</a></body></html>`, testSite(t), "Infobip")
	assert.True(t, eris.Is(err, ErrNoSearchResult))
}

func TestResolveDetailURL(t *testing.T) {
	site := testSite(t)
	f := &fakeFetcher{pages: map[string]string{
		"https://www.companywall.hr/pretraga?n=Infobip+d.o.o.": resultsPage,
	}}

	got, err := ResolveDetailURL(context.Background(), f, site, "Infobip d.o.o.")
	require.NoError(t, err)
	assert.Equal(t, "https://www.companywall.hr/tvrtka/infobip-doo/MMEG9Bf", got)
	assert.Equal(t, []string{"https://www.companywall.hr/pretraga?n=Infobip+d.o.o."}, f.urls)

	_, err = ResolveDetailURL(context.Background(), f, site, "Drugo")
	assert.Error(t, err)
}
