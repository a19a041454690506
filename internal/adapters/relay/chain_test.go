package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRelay struct {
	srv  *httptest.Server
	hits atomic.Int32
	last atomic.Value
}

func newStubRelay(t *testing.T, status int, body string, contentType string) *stubRelay {
	t.Helper()
	s := &stubRelay{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.last.Store(r.URL.Query().Get("url"))
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *stubRelay) template() string { return s.srv.URL + "/raw?url={url}" }

func TestChain_FallsThroughToThirdRelay(t *testing.T) {
	page := "<html><body>" + strings.Repeat("x", 5000) + "</body></html>"
	r1 := newStubRelay(t, http.StatusInternalServerError, "boom", "")
	r2 := newStubRelay(t, http.StatusInternalServerError, "boom", "")
	r3 := newStubRelay(t, http.StatusOK, page, "text/html; charset=utf-8")
	extra := newStubRelay(t, http.StatusOK, page, "text/html")

	chain := New([]string{r1.template(), r2.template(), r3.template(), extra.template()}, time.Second, nil)
	body, err := chain.Fetch(context.Background(), "https://www.companywall.hr/tvrtka/x/1")
	require.NoError(t, err)

	assert.Equal(t, page, body)
	assert.EqualValues(t, 1, r1.hits.Load())
	assert.EqualValues(t, 1, r2.hits.Load())
	assert.EqualValues(t, 1, r3.hits.Load())
	assert.EqualValues(t, 0, extra.hits.Load(), "no relay may be tried after a success")
	assert.Equal(t, "https://www.companywall.hr/tvrtka/x/1", r3.last.Load())
}

func TestChain_ShortBodyIsAFailure(t *testing.T) {
	short := newStubRelay(t, http.StatusOK, "<html></html>", "text/html")
	good := newStubRelay(t, http.StatusOK, strings.Repeat("a", MinBodyLength), "text/html")

	chain := New([]string{short.template(), good.template()}, time.Second, nil)
	body, err := chain.Fetch(context.Background(), "https://example.hr")
	require.NoError(t, err)
	assert.Len(t, body, MinBodyLength)
	assert.EqualValues(t, 1, short.hits.Load())
}

func TestChain_AllExhausted(t *testing.T) {
	r1 := newStubRelay(t, http.StatusBadGateway, "", "")
	r2 := newStubRelay(t, http.StatusOK, "tiny", "")

	chain := New([]string{r1.template(), r2.template()}, time.Second, nil)
	_, err := chain.Fetch(context.Background(), "https://example.hr")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrAllProxiesExhausted))
	assert.EqualValues(t, 1, r1.hits.Load())
	assert.EqualValues(t, 1, r2.hits.Load())
}

func TestChain_NoRelays(t *testing.T) {
	_, err := New(nil, time.Second, nil).Fetch(context.Background(), "https://example.hr")
	assert.True(t, eris.Is(err, ErrNoRelays))
}

func TestChain_DecodesWindows1250(t *testing.T) {
	// "Veličina" encoded as windows-1250: č = 0xE8.
	raw := "<html><body><p>Veli\xe8ina: Mikro</p>" + strings.Repeat(" ", 120) + "</body></html>"
	r := newStubRelay(t, http.StatusOK, raw, "text/html; charset=windows-1250")

	body, err := New([]string{r.template()}, time.Second, nil).Fetch(context.Background(), "https://example.hr")
	require.NoError(t, err)
	assert.Contains(t, body, "Veličina: Mikro")
}

func TestChain_CancelledContext(t *testing.T) {
	r := newStubRelay(t, http.StatusOK, strings.Repeat("a", 200), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]string{r.template()}, time.Second, nil).Fetch(ctx, "https://example.hr")
	require.Error(t, err)
	assert.EqualValues(t, 0, r.hits.Load())
}

func TestRelayName(t *testing.T) {
	assert.Equal(t, "corsproxy.io", relayName("https://corsproxy.io/?url={url}"))
	assert.Equal(t, "api.allorigins.win", relayName("https://api.allorigins.win/raw?url={url}"))
}
