package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadprep/leadprep/internal/leadprep"
)

type fakeScraper struct {
	leaders []leadprep.Leader
	called  bool
}

func (s *fakeScraper) Scrape(_ context.Context, _ string) []leadprep.Leader {
	s.called = true
	return s.leaders
}

type fakeDirectory struct {
	leaders []leadprep.Leader
	called  bool
}

func (d *fakeDirectory) Lookup(_ string) []leadprep.Leader {
	d.called = true
	return d.leaders
}

type fakeGateway struct {
	record *leadprep.CompanyRecord
	getErr error
	puts   chan []leadprep.Leader
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{puts: make(chan []leadprep.Leader, 1)}
}

func (g *fakeGateway) Get(_ context.Context, _ string) (*leadprep.CompanyRecord, error) {
	return g.record, g.getErr
}

func (g *fakeGateway) Put(_ context.Context, _ string, leaders []leadprep.Leader) error {
	g.puts <- leaders
	return nil
}

func (g *fakeGateway) Close() {}

type fakeCache struct {
	entries map[string][]leadprep.Leader
	putErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]leadprep.Leader)}
}

func (c *fakeCache) Get(domain string) ([]leadprep.Leader, bool) {
	leaders, ok := c.entries[domain]
	return leaders, ok
}

func (c *fakeCache) Put(domain string, leaders []leadprep.Leader) error {
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[domain] = leaders
	return nil
}

func newTestAnalyzer(s leadprep.Scraper, d leadprep.Directory, g leadprep.Gateway) *Analyzer {
	return New(s, d, g, nil, Config{CacheEnabled: true, PersistTimeout: time.Second}, zap.NewNop())
}

func TestAnalyze_InvalidInput(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(&fakeScraper{}, &fakeDirectory{}, nil)
	for _, input := range []string{"", "   ", "localhost"} {
		_, err := a.Analyze(context.Background(), input)
		require.ErrorIs(t, err, leadprep.ErrInvalidInput, "input %q", input)
	}
}

func TestAnalyze_DatabaseTierShortCircuitsScraper(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Live Person", Title: "CEO"}}}
	gateway := newFakeGateway()
	gateway.record = &leadprep.CompanyRecord{
		Domain:  "apple.com",
		Leaders: []leadprep.Leader{{Name: "Tim Cook", Title: "CEO"}},
	}
	a := newTestAnalyzer(scraper, &fakeDirectory{}, gateway)

	res, err := a.Analyze(context.Background(), "apple.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceDatabase, res.DataSource)
	require.Equal(t, "Tim Cook", res.Leaders[0].Name)
	require.False(t, scraper.called, "scraper must not run when the database record hits")
}

func TestAnalyze_LocalCacheTierShortCircuitsEverything(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Live Person", Title: "CEO"}}}
	gateway := newFakeGateway()
	gateway.record = &leadprep.CompanyRecord{
		Domain:  "apple.com",
		Leaders: []leadprep.Leader{{Name: "Stored Person", Title: "CEO"}},
	}
	cache := newFakeCache()
	cache.entries["apple.com"] = []leadprep.Leader{{Name: "Cached Person", Title: "CEO"}}
	a := New(scraper, &fakeDirectory{}, gateway, cache, Config{CacheEnabled: true, PersistTimeout: time.Second}, zap.NewNop())

	res, err := a.Analyze(context.Background(), "apple.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceCache, res.DataSource)
	require.Equal(t, "Cached Person", res.Leaders[0].Name)
	require.False(t, scraper.called, "scraper must not run when the local cache hits")
}

func TestAnalyze_ScrapeHitRefreshesLocalCache(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Jane Doe", Title: "CEO"}}}
	cache := newFakeCache()
	a := New(scraper, &fakeDirectory{}, nil, cache, Config{PersistTimeout: time.Second}, zap.NewNop())

	res, err := a.Analyze(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
	cached, ok := cache.Get("acme.com")
	require.True(t, ok)
	require.Equal(t, "Jane Doe", cached[0].Name)
}

func TestAnalyze_DatabaseHitRefreshesLocalCache(t *testing.T) {
	t.Parallel()

	gateway := newFakeGateway()
	gateway.record = &leadprep.CompanyRecord{
		Domain:  "apple.com",
		Leaders: []leadprep.Leader{{Name: "Tim Cook", Title: "CEO"}},
	}
	cache := newFakeCache()
	a := New(&fakeScraper{}, &fakeDirectory{}, gateway, cache, Config{CacheEnabled: true, PersistTimeout: time.Second}, zap.NewNop())

	res, err := a.Analyze(context.Background(), "apple.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceDatabase, res.DataSource)
	cached, ok := cache.Get("apple.com")
	require.True(t, ok)
	require.Equal(t, "Tim Cook", cached[0].Name)
}

func TestAnalyze_CacheWriteFailureDoesNotFailAnalysis(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Jane Doe", Title: "CEO"}}}
	cache := newFakeCache()
	cache.putErr = errors.New("disk full")
	a := New(scraper, &fakeDirectory{}, nil, cache, Config{PersistTimeout: time.Second}, zap.NewNop())

	res, err := a.Analyze(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
}

func TestAnalyze_ScrapeTierSkipsFallbackAndPersists(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Jane Doe", Title: "CEO"}}}
	directory := &fakeDirectory{leaders: []leadprep.Leader{{Name: "Curated Person", Title: "CEO"}}}
	gateway := newFakeGateway()
	a := newTestAnalyzer(scraper, directory, gateway)

	res, err := a.Analyze(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
	require.Equal(t, "Jane Doe", res.Leaders[0].Name)
	require.False(t, directory.called, "fallback must not run when scraping succeeds")

	select {
	case persisted := <-gateway.puts:
		require.Equal(t, "Jane Doe", persisted[0].Name)
	case <-time.After(2 * time.Second):
		t.Fatal("expected scraped leaders to be persisted")
	}
}

func TestAnalyze_FallbackTierWhenScrapeEmpty(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{}
	directory := &fakeDirectory{leaders: []leadprep.Leader{{Name: "Tim Cook", Title: "CEO"}}}
	a := newTestAnalyzer(scraper, directory, nil)

	res, err := a.Analyze(context.Background(), "apple.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceFallback, res.DataSource)
	require.True(t, scraper.called)
}

func TestAnalyze_GatewayErrorDegradesToMiss(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Jane Doe", Title: "CEO"}}}
	gateway := newFakeGateway()
	gateway.getErr = errors.New("connection refused")
	a := newTestAnalyzer(scraper, &fakeDirectory{}, gateway)

	res, err := a.Analyze(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
}

func TestAnalyze_CacheDisabledSkipsGateway(t *testing.T) {
	t.Parallel()

	scraper := &fakeScraper{leaders: []leadprep.Leader{{Name: "Jane Doe", Title: "CEO"}}}
	gateway := newFakeGateway()
	gateway.record = &leadprep.CompanyRecord{
		Domain:  "acme.com",
		Leaders: []leadprep.Leader{{Name: "Stale Person", Title: "CEO"}},
	}
	a := New(scraper, &fakeDirectory{}, gateway, nil, Config{CacheEnabled: false, PersistTimeout: time.Second}, zap.NewNop())

	res, err := a.Analyze(context.Background(), "acme.com")
	require.NoError(t, err)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
	require.Equal(t, "Jane Doe", res.Leaders[0].Name)
}

func TestAnalyze_EmptyEverywhereIsSuccess(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(&fakeScraper{}, &fakeDirectory{}, nil)

	res, err := a.Analyze(context.Background(), "tesla.com")
	require.NoError(t, err)
	require.Equal(t, "tesla.com", res.Domain)
	require.NotNil(t, res.Leaders)
	require.Empty(t, res.Leaders)
	require.Equal(t, leadprep.SourceScraped, res.DataSource)
}
