package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalPagesProbed tracks candidate leadership pages fetched.
	TotalPagesProbed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_scraper_pages_probed_total",
		Help: "The total number of candidate pages fetched.",
	})
	// TotalFetchErrors tracks candidate fetches that failed or returned non-2xx.
	TotalFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_scraper_fetch_errors_total",
		Help: "The total number of candidate page fetches that failed.",
	})
	// TotalLeadersExtracted tracks leaders extracted from live pages.
	TotalLeadersExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leadprep_scraper_leaders_extracted_total",
		Help: "The total number of leaders extracted from scraped pages.",
	})
)
