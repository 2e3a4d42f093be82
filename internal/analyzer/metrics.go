package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalCacheHits tracks analyses served from the local leader cache.
	TotalCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_analyze_cache_hits_total",
		Help: "The total number of analyses served from the local cache.",
	})
	// TotalDatabaseHits tracks analyses served from the persistence gateway.
	TotalDatabaseHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_analyze_database_hits_total",
		Help: "The total number of analyses served from the database cache.",
	})
	// TotalScrapeHits tracks analyses served from live scraping.
	TotalScrapeHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_analyze_scrape_hits_total",
		Help: "The total number of analyses served from live scraping.",
	})
	// TotalFallbackHits tracks analyses served from the curated directory.
	TotalFallbackHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_analyze_fallback_hits_total",
		Help: "The total number of analyses served from the fallback directory.",
	})
	// TotalEmptyResults tracks analyses where no tier produced leaders.
	TotalEmptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_analyze_empty_total",
		Help: "The total number of analyses that produced no leaders.",
	})
)
