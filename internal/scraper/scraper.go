// Package scraper extracts company leadership from live websites using
// heuristic HTML analysis.
package scraper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// Config controls probing and extraction behavior.
type Config struct {
	UserAgent           string
	FetchTimeout        time.Duration
	Budget              time.Duration
	MaxLeaders          int
	CandidatePaths      []string
	TitleVocabulary     []string
	SnapshotPrefix      string
	SnapshotContentType string
}

// Scraper probes a domain's candidate leadership pages and parses executive
// name/title pairs out of the first page that looks like one.
type Scraper struct {
	cfg       Config
	base      *colly.Collector
	extractor *extractor
	snapshots leadprep.SnapshotStore
	logger    *zap.Logger
}

// New constructs a Scraper. The snapshot store may be nil, in which case raw
// pages are not archived.
func New(cfg Config, snapshots leadprep.SnapshotStore, logger *zap.Logger) (*Scraper, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user agent is required")
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 4 * time.Second
	}
	if cfg.Budget <= 0 {
		cfg.Budget = 15 * time.Second
	}
	if cfg.MaxLeaders <= 0 {
		cfg.MaxLeaders = 10
	}
	if len(cfg.CandidatePaths) == 0 {
		cfg.CandidatePaths = DefaultCandidatePaths
	}
	if cfg.SnapshotContentType == "" {
		cfg.SnapshotContentType = "text/html; charset=utf-8"
	}

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.SetRequestTimeout(cfg.FetchTimeout)
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   cfg.FetchTimeout,
		ResponseHeaderTimeout: cfg.FetchTimeout,
		ForceAttemptHTTP2:     true,
	})

	return &Scraper{
		cfg:       cfg,
		base:      base,
		extractor: newExtractor(NewTitleMatcher(cfg.TitleVocabulary)),
		snapshots: snapshots,
		logger:    logger,
	}, nil
}

// Scrape probes the domain's candidate pages in priority order and returns
// leaders from the first page that parses as a leadership page. It never
// fails: network errors, timeouts, and bot walls all degrade to an empty
// result so the caller can fall back transparently. Each candidate is fetched
// once, no retries, and the whole attempt is bounded by the configured budget.
func (s *Scraper) Scrape(ctx context.Context, domain string) []leadprep.Leader {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Budget)
	defer cancel()

	for _, pageURL := range leadprep.CandidatePages(domain, s.cfg.CandidatePaths) {
		if ctx.Err() != nil {
			s.logger.Warn("scrape budget exhausted", zap.String("domain", domain))
			return nil
		}
		TotalPagesProbed.Inc()
		body, err := s.fetch(pageURL)
		if err != nil {
			TotalFetchErrors.Inc()
			s.logger.Debug("candidate fetch failed", zap.String("url", pageURL), zap.Error(err))
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			continue
		}
		if !hasLeadershipIndicator(doc.Text()) {
			continue
		}

		// First parseable leadership page wins; no aggregation across pages.
		leaders := s.extractor.Extract(doc, pageURL, s.cfg.MaxLeaders)
		TotalLeadersExtracted.Add(float64(len(leaders)))
		s.snapshot(ctx, domain, pageURL, body)
		s.logger.Info("leadership page scraped",
			zap.String("domain", domain),
			zap.String("url", pageURL),
			zap.Int("leaders", len(leaders)),
		)
		return leaders
	}
	return nil
}

// fetch retrieves a single candidate page via a cloned collector. Colly only
// invokes OnResponse for successful statuses, so a non-nil body implies 2xx.
func (s *Scraper) fetch(pageURL string) ([]byte, error) {
	collector := s.base.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{body: append([]byte(nil), r.Body...)})
	})
	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		send(fetchResult{err: err})
	})

	if err := collector.Visit(pageURL); err != nil {
		return nil, err
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		return res.body, res.err
	default:
		return nil, errors.New("fetch produced no result")
	}
}

func (s *Scraper) snapshot(ctx context.Context, domain, pageURL string, body []byte) {
	if s.snapshots == nil {
		return
	}
	urlHash := fmt.Sprintf("%x", sha256.Sum256([]byte(pageURL)))
	objectName := path.Join(s.cfg.SnapshotPrefix, domain, fmt.Sprintf("%s.html", urlHash[:16]))
	if _, err := s.snapshots.PutObject(ctx, objectName, s.cfg.SnapshotContentType, body); err != nil {
		s.logger.Warn("page snapshot failed", zap.String("url", pageURL), zap.Error(err))
	}
}

type fetchResult struct {
	body []byte
	err  error
}
