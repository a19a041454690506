package companies

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"gradplus/internal/domain"
	"gradplus/internal/extract"
	"gradplus/internal/logging"
	"gradplus/internal/ports"
)

var (
	ErrEmptyTerm  = eris.New("search term is empty")
	ErrInvalidOIB = eris.New("oib must be 11 digits")
	ErrNotFound   = eris.New("company not found")
)

const defaultCacheTimeout = 10 * time.Second

const describeSystemPrompt = "Ti si asistent koji piše kratke, činjenične opise hrvatskih tvrtki. " +
	"Koristi isključivo dane podatke. Odgovori jednom rečenicom na hrvatskom jeziku."

// Service runs the company lookup pipeline: search resolution, detail fetch,
// extraction and write-once caching.
type Service struct {
	fetcher   ports.PageFetcher
	store     ports.CompanyStore
	site      *extract.Site
	completer ports.Completer
	log       *zap.Logger

	cacheTimeout time.Duration
	pending      sync.WaitGroup
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.log = l } }

// WithCompleter enables description enrichment for records without one.
func WithCompleter(c ports.Completer) Option { return func(s *Service) { s.completer = c } }

func WithCacheTimeout(d time.Duration) Option { return func(s *Service) { s.cacheTimeout = d } }

func New(fetcher ports.PageFetcher, store ports.CompanyStore, site *extract.Site, opts ...Option) *Service {
	s := &Service{
		fetcher:      fetcher,
		store:        store,
		site:         site,
		cacheTimeout: defaultCacheTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrNop(s.log)
	return s
}

// Search looks a company up by name or OIB. An OIB already in the store is
// answered from there. The returned error is one of the extract outcomes
// (see NoRecord) or an upstream fetch failure; a record is never partial.
func (s *Service) Search(ctx context.Context, term string) (*domain.Company, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	log := s.log.With(zap.String("term", term))

	if extract.IsNationalID(term) {
		c, found, err := s.store.FindByOIB(ctx, term)
		switch {
		case err != nil:
			log.Warn("store lookup failed, scraping instead", zap.Error(err))
		case found:
			log.Debug("served from store")
			return &c, nil
		}
	}

	detailURL, err := extract.ResolveDetailURL(ctx, s.fetcher, s.site, term)
	if err != nil {
		log.Info("search resolution failed", zap.Error(err))
		return nil, err
	}
	body, err := s.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		log.Info("detail fetch failed", zap.String("url", detailURL), zap.Error(err))
		return nil, eris.Wrapf(err, "fetch detail page %s", detailURL)
	}
	c, err := extract.Extract(body, term, s.site)
	if err != nil {
		log.Info("no company record", zap.String("url", detailURL), zap.Error(err))
		return nil, err
	}
	c.Source = detailURL
	s.describe(ctx, c)

	log.Info("company extracted",
		zap.String("oib", c.NationalID),
		zap.String("name", c.Name),
		zap.Int("financial_years", len(c.Financials)))
	s.cacheDetached(ctx, *c)
	return c, nil
}

// Get returns a cached record.
func (s *Service) Get(ctx context.Context, oib string) (*domain.Company, error) {
	oib = strings.TrimSpace(oib)
	if !extract.IsNationalID(oib) {
		return nil, ErrInvalidOIB
	}
	c, found, err := s.store.FindByOIB(ctx, oib)
	if err != nil {
		return nil, eris.Wrapf(err, "find company %s", oib)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

// CacheIfAbsent inserts c unless a record with the same OIB is stored.
// Existing records are never updated.
func (s *Service) CacheIfAbsent(ctx context.Context, c domain.Company) error {
	if !extract.IsNationalID(c.NationalID) {
		return nil
	}
	_, found, err := s.store.FindByOIB(ctx, c.NationalID)
	if err != nil {
		return eris.Wrapf(err, "check cached company %s", c.NationalID)
	}
	if found {
		return nil
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return eris.Wrapf(err, "cache company %s", c.NationalID)
	}
	return nil
}

// cacheDetached writes c in the background. The write outlives the caller's
// context; failures are logged and dropped.
func (s *Service) cacheDetached(ctx context.Context, c domain.Company) {
	if c.NationalID == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, s.cacheTimeout)
		defer cancel()
		if err := s.CacheIfAbsent(ctx, c); err != nil {
			s.log.Warn("cache write failed", zap.String("oib", c.NationalID), zap.Error(err))
		}
	}()
}

// Wait blocks until background cache writes have finished.
func (s *Service) Wait() { s.pending.Wait() }

func (s *Service) describe(ctx context.Context, c *domain.Company) {
	if s.completer == nil || c.Description != extract.Unknown {
		return
	}
	text, err := s.completer.Complete(ctx, describePrompt(c), describeSystemPrompt)
	if err != nil {
		s.log.Warn("description enrichment failed", zap.String("oib", c.NationalID), zap.Error(err))
		return
	}
	if text = strings.TrimSpace(text); text != "" {
		c.Description = text
	}
}

func describePrompt(c *domain.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Naziv: %s\n", c.FullName)
	for _, f := range []struct{ label, value string }{
		{"Sjedište", c.Address},
		{"Djelatnost", c.Activity},
		{"Osnovano", c.Founded},
		{"Veličina", c.Size},
		{"Status", c.Status},
	} {
		if f.value != "" && f.value != extract.Unknown {
			fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
		}
	}
	if len(c.Financials) > 0 {
		f := c.Financials[0]
		fmt.Fprintf(&b, "Prihodi %d: %.2f EUR, broj radnika: %d\n", f.Year, f.Income, f.EmployeeCount)
	}
	b.WriteString("Napiši jednu rečenicu koja opisuje tvrtku.")
	return b.String()
}

// NoRecord reports whether err is an expected "nothing found" outcome
// rather than a failure.
func NoRecord(err error) bool {
	return eris.Is(err, extract.ErrNoSearchResult) ||
		eris.Is(err, extract.ErrNotACompanyPage) ||
		eris.Is(err, extract.ErrIdentifierMismatch) ||
		eris.Is(err, ErrNotFound)
}
