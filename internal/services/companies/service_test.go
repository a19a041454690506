package companies

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradplus/internal/adapters/memory"
	"gradplus/internal/domain"
	"gradplus/internal/extract"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if body, ok := f.pages[url]; ok {
		return body, nil
	}
	return "", errors.New("all relays failed")
}

type fakeCompleter struct {
	reply string
	err   error
	asked []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt, _ string) (string, error) {
	f.asked = append(f.asked, prompt)
	return f.reply, f.err
}

type failingStore struct{ *memory.Store }

func (failingStore) Insert(context.Context, domain.Company) error { return errors.New("disk full") }

const (
	searchURL = "https://www.companywall.hr/pretraga?n=Podravka"
	oibURL    = "https://www.companywall.hr/pretraga?n=12345678901"
	detailURL = "https://www.companywall.hr/tvrtka/podravka-dd/PD1"
)

const resultsPage = `<html><body>
<div class="search-result"><a href="/tvrtka/podravka-dd/PD1">PODRAVKA d.d.</a> Koprivnica, OIB 12345678901</div>
</body></html>`

const detailPage = `<html><body>
<h1>Podravka d.d.</h1>
<dl><dt>OIB</dt><dd>12345678901</dd><dt>MBS</dt><dd>010006549</dd><dt>Adresa</dt><dd>Ante Starčevića 32, Koprivnica</dd></dl>
</body></html>`

func site(t *testing.T) *extract.Site {
	t.Helper()
	s, err := extract.NewSite("https://www.companywall.hr", "https://www.companywall.hr/pretraga?n={query}", `/tvrtka/[^/?#]+/[^/?#]+`)
	require.NoError(t, err)
	return s
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]string{
		searchURL: resultsPage,
		oibURL:    resultsPage,
		detailURL: detailPage,
	}}
}

func TestSearch_ExtractsAndCaches(t *testing.T) {
	store := memory.New()
	svc := New(newFetcher(), store, site(t))

	c, err := svc.Search(context.Background(), "  Podravka ")
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "Podravka d.d.", c.Name)
	assert.Equal(t, "12345678901", c.NationalID)
	assert.Equal(t, "010006549", c.RegistryNumber)
	assert.Equal(t, detailURL, c.Source)
	assert.Equal(t, 1, store.Len())

	cached, err := svc.Get(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, c.Name, cached.Name)
}

func TestSearch_IdentifierServedFromStore(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Insert(context.Background(), domain.Company{NationalID: "12345678901", Name: "Iz predmemorije"}))
	f := newFetcher()
	svc := New(f, store, site(t))

	c, err := svc.Search(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "Iz predmemorije", c.Name)
	assert.Empty(t, f.calls, "no scraping for a cached OIB")
}

func TestSearch_IdentifierMismatch(t *testing.T) {
	f := newFetcher()
	f.pages["https://www.companywall.hr/pretraga?n=99999999999"] = resultsPage
	svc := New(f, memory.New(), site(t))

	c, err := svc.Search(context.Background(), "99999999999")
	assert.Nil(t, c)
	assert.True(t, eris.Is(err, extract.ErrIdentifierMismatch))
	assert.True(t, NoRecord(err))
}

func TestSearch_NoRecordOutcomes(t *testing.T) {
	f := newFetcher()
	f.pages["https://www.companywall.hr/pretraga?n=Nitko"] = `<html><body><p>Nema rezultata</p></body></html>`
	svc := New(f, memory.New(), site(t))

	_, err := svc.Search(context.Background(), "Nitko")
	assert.True(t, eris.Is(err, extract.ErrNoSearchResult))
	assert.True(t, NoRecord(err))

	_, err = svc.Search(context.Background(), "Nedostupno")
	require.Error(t, err)
	assert.False(t, NoRecord(err), "relay failure is not a missing record")

	_, err = svc.Search(context.Background(), "   ")
	assert.True(t, eris.Is(err, ErrEmptyTerm))
}

func TestSearch_CacheFailureIsSwallowed(t *testing.T) {
	svc := New(newFetcher(), failingStore{memory.New()}, site(t))

	c, err := svc.Search(context.Background(), "Podravka")
	svc.Wait()
	require.NoError(t, err)
	assert.Equal(t, "12345678901", c.NationalID)
}

func TestSearch_CacheOutlivesCallerContext(t *testing.T) {
	store := memory.New()
	svc := New(newFetcher(), store, site(t))

	ctx, cancel := context.WithCancel(context.Background())
	_, err := svc.Search(ctx, "Podravka")
	cancel()
	svc.Wait()
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestSearch_DescriptionEnrichment(t *testing.T) {
	comp := &fakeCompleter{reply: " Podravka je prehrambena tvrtka iz Koprivnice. "}
	svc := New(newFetcher(), memory.New(), site(t), WithCompleter(comp))

	c, err := svc.Search(context.Background(), "Podravka")
	svc.Wait()
	require.NoError(t, err)
	assert.Equal(t, "Podravka je prehrambena tvrtka iz Koprivnice.", c.Description)
	require.Len(t, comp.asked, 1)
	assert.True(t, strings.Contains(comp.asked[0], "Ante Starčevića 32, Koprivnica"))

	failing := &fakeCompleter{err: errors.New("quota")}
	svc = New(newFetcher(), memory.New(), site(t), WithCompleter(failing))
	c, err = svc.Search(context.Background(), "Podravka")
	svc.Wait()
	require.NoError(t, err)
	assert.Equal(t, extract.Unknown, c.Description)
}

func TestCacheIfAbsent_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := New(newFetcher(), store, site(t))

	require.NoError(t, svc.CacheIfAbsent(ctx, domain.Company{NationalID: "12345678901", Name: "Prvi"}))
	require.NoError(t, svc.CacheIfAbsent(ctx, domain.Company{NationalID: "12345678901", Name: "Drugi"}))
	require.NoError(t, svc.CacheIfAbsent(ctx, domain.Company{Name: "Bez OIB-a"}))

	assert.Equal(t, 1, store.Len())
	c, err := svc.Get(ctx, "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "Prvi", c.Name)
}

func TestGet(t *testing.T) {
	svc := New(newFetcher(), memory.New(), site(t))

	_, err := svc.Get(context.Background(), "123")
	assert.True(t, eris.Is(err, ErrInvalidOIB))

	_, err = svc.Get(context.Background(), "12345678901")
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.True(t, NoRecord(err))
}
