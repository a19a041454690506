package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"gradplus/internal/logging"
)

const (
	// MinBodyLength is the smallest body accepted as a real page.
	MinBodyLength = 100
	// MaxBodySize caps how much of a relay response is read (10MB).
	MaxBodySize = 10 * 1024 * 1024

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	ErrAllProxiesExhausted = eris.New("all proxy relays exhausted")
	ErrNoRelays            = eris.New("no proxy relays configured")
)

// Failure describes why a single relay was skipped.
type Failure struct {
	Relay  string
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return "relay " + f.Relay + ": " + f.Err.Error()
	}
	return "relay " + f.Relay + ": " + http.StatusText(f.Status)
}

func (f *Failure) Unwrap() error { return f.Err }

// Chain fetches third-party pages through an ordered list of CORS relays.
// Each relay is a URL template with a {url} placeholder for the escaped
// target. Every relay is tried at most once per Fetch, in order, without delay.
type Chain struct {
	relays []string
	client *http.Client
	log    *zap.Logger
}

func New(relays []string, timeout time.Duration, log *zap.Logger) *Chain {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Chain{
		relays: append([]string(nil), relays...),
		client: &http.Client{Timeout: timeout},
		log:    logging.OrNop(log),
	}
}

// WithClient swaps the HTTP client; used by tests.
func (c *Chain) WithClient(client *http.Client) *Chain {
	c.client = client
	return c
}

// Relays returns the configured relay templates in try order.
func (c *Chain) Relays() []string { return append([]string(nil), c.relays...) }

// Fetch returns the body of target from the first relay that answers with a
// success status and a body of at least MinBodyLength characters.
func (c *Chain) Fetch(ctx context.Context, target string) (string, error) {
	if len(c.relays) == 0 {
		return "", ErrNoRelays
	}
	return c.fetch(ctx, target, 0)
}

func (c *Chain) fetch(ctx context.Context, target string, attempt int) (string, error) {
	if attempt >= len(c.relays) {
		return "", eris.Wrapf(ErrAllProxiesExhausted, "fetch %s", target)
	}
	if err := ctx.Err(); err != nil {
		return "", eris.Wrap(err, "relay: fetch cancelled")
	}

	body, err := c.try(ctx, c.relays[attempt], target)
	if err != nil {
		c.log.Warn("relay failed",
			zap.Int("attempt", attempt),
			zap.String("target", target),
			zap.Error(err),
		)
		return c.fetch(ctx, target, attempt+1)
	}
	c.log.Debug("relay ok", zap.Int("attempt", attempt), zap.Int("bytes", len(body)))
	return body, nil
}

func (c *Chain) try(ctx context.Context, template, target string) (string, error) {
	name := relayName(template)
	reqURL := strings.ReplaceAll(template, "{url}", url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &Failure{Relay: name, Err: eris.Wrap(err, "build request")}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "hr-HR,hr;q=0.9,en;q=0.7")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Failure{Relay: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &Failure{Relay: name, Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return "", &Failure{Relay: name, Err: eris.Wrap(err, "read body")}
	}
	data, err := decode(raw, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &Failure{Relay: name, Err: err}
	}
	body := string(data)
	if n := utf8.RuneCountInString(body); n < MinBodyLength {
		return "", &Failure{Relay: name, Err: eris.Errorf("body too short (%d chars)", n)}
	}
	return body, nil
}

// decode converts a page body to UTF-8. Bodies that are already valid UTF-8
// and carry no explicit charset are returned untouched, since the sniffer
// only looks at the first KB and falls back to windows-1252.
func decode(raw []byte, contentType string) ([]byte, error) {
	if utf8.Valid(raw) && !strings.Contains(strings.ToLower(contentType), "charset=") {
		return raw, nil
	}
	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return nil, eris.Wrap(err, "decode charset")
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "decode body")
	}
	return out, nil
}

func relayName(template string) string {
	if u, err := url.Parse(strings.ReplaceAll(template, "{url}", "")); err == nil && u.Host != "" {
		return u.Host
	}
	return template
}
