// Package leadprep defines core types shared across subsystems.
package leadprep

import "time"

// DataSource labels the tier that produced an extraction result.
type DataSource string

// Provenance tags attached to extraction results.
const (
	SourceScraped  DataSource = "scraped"
	SourceFallback DataSource = "fallback"
	SourceDatabase DataSource = "database"
	SourceCache    DataSource = "cache"
)

// Leader is a named individual holding an executive title at a company.
type Leader struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	SourceURL string `json:"source_url,omitempty"`
}

// ExtractionResult is the request-scoped outcome of an analyze call.
// It is constructed once and never mutated afterwards.
type ExtractionResult struct {
	Domain     string     `json:"domain"`
	Leaders    []Leader   `json:"leaders"`
	DataSource DataSource `json:"data_source"`
}

// CompanyRecord is the persisted form of a company plus its leader set.
type CompanyRecord struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Leaders   []Leader  `json:"leaders"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Interview is a media appearance found for a leader.
type Interview struct {
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}
