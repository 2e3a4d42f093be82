// Package analyzer sequences the extraction tiers: local cache, database,
// live scrape, curated fallback.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// Config controls orchestration policy.
type Config struct {
	// CacheEnabled gates the database-lookup tier. The stored record wins
	// over a fresh scrape and carries no TTL; operators who want fresh data
	// turn the tier off.
	CacheEnabled bool
	// PersistTimeout bounds the background write after a successful scrape.
	PersistTimeout time.Duration
}

// Analyzer runs the tiered extraction flow for one analyze request.
type Analyzer struct {
	scraper   leadprep.Scraper
	directory leadprep.Directory
	gateway   leadprep.Gateway
	cache     leadprep.LeaderCache
	cfg       Config
	logger    *zap.Logger
}

// New constructs an Analyzer. The gateway and cache may be nil when not
// configured; the corresponding tiers are then skipped.
func New(scraper leadprep.Scraper, directory leadprep.Directory, gateway leadprep.Gateway, cache leadprep.LeaderCache, cfg Config, logger *zap.Logger) *Analyzer {
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 10 * time.Second
	}
	return &Analyzer{
		scraper:   scraper,
		directory: directory,
		gateway:   gateway,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
	}
}

// Analyze resolves a raw company input into an extraction result. Only
// invalid input surfaces as an error; every other failure degrades to the
// next tier, with the provenance tag telling the caller which tier answered.
func (a *Analyzer) Analyze(ctx context.Context, rawInput string) (leadprep.ExtractionResult, error) {
	domain, err := leadprep.NormalizeDomain(rawInput)
	if err != nil {
		return leadprep.ExtractionResult{}, err
	}
	if !leadprep.ValidateDomain(domain) {
		return leadprep.ExtractionResult{}, fmt.Errorf("%w: %q is not a public company domain", leadprep.ErrInvalidInput, domain)
	}

	if a.cache != nil {
		if leaders, ok := a.cache.Get(domain); ok && len(leaders) > 0 {
			TotalCacheHits.Inc()
			return leadprep.ExtractionResult{
				Domain:     domain,
				Leaders:    leaders,
				DataSource: leadprep.SourceCache,
			}, nil
		}
	}

	if a.gateway != nil && a.cfg.CacheEnabled {
		rec, err := a.gateway.Get(ctx, domain)
		if err != nil {
			// Store unreachable: treat as cache miss, keep the flow alive.
			a.logger.Warn("gateway lookup failed", zap.String("domain", domain), zap.Error(err))
		} else if rec != nil && len(rec.Leaders) > 0 {
			TotalDatabaseHits.Inc()
			a.writeCache(domain, rec.Leaders)
			return leadprep.ExtractionResult{
				Domain:     domain,
				Leaders:    rec.Leaders,
				DataSource: leadprep.SourceDatabase,
			}, nil
		}
	}

	if leaders := a.scraper.Scrape(ctx, domain); len(leaders) > 0 {
		TotalScrapeHits.Inc()
		a.writeCache(domain, leaders)
		a.persistAsync(domain, leaders)
		return leadprep.ExtractionResult{
			Domain:     domain,
			Leaders:    leaders,
			DataSource: leadprep.SourceScraped,
		}, nil
	}

	if leaders := a.directory.Lookup(domain); len(leaders) > 0 {
		TotalFallbackHits.Inc()
		return leadprep.ExtractionResult{
			Domain:     domain,
			Leaders:    leaders,
			DataSource: leadprep.SourceFallback,
		}, nil
	}

	// Empty-but-successful analysis is a valid terminal outcome.
	TotalEmptyResults.Inc()
	return leadprep.ExtractionResult{
		Domain:     domain,
		Leaders:    []leadprep.Leader{},
		DataSource: leadprep.SourceScraped,
	}, nil
}

// writeCache refreshes the local cache entry for a domain. Best effort.
func (a *Analyzer) writeCache(domain string, leaders []leadprep.Leader) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Put(domain, leaders); err != nil {
		a.logger.Warn("cache write failed", zap.String("domain", domain), zap.Error(err))
	}
}

// persistAsync writes a freshly scraped leader set without blocking the
// response. Failures are logged and dropped: persistence is best-effort.
func (a *Analyzer) persistAsync(domain string, leaders []leadprep.Leader) {
	if a.gateway == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.PersistTimeout)
		defer cancel()
		if err := a.gateway.Put(ctx, domain, leaders); err != nil {
			a.logger.Warn("persist scraped leaders failed", zap.String("domain", domain), zap.Error(err))
		}
	}()
}
