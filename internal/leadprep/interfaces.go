package leadprep

import (
	"context"
	"time"
)

// Scraper extracts leader name/title pairs from a company's website.
// Network failures are absorbed; an unreachable site yields an empty slice.
type Scraper interface {
	Scrape(ctx context.Context, domain string) []Leader
}

// Directory serves curated leader lists for well-known domains.
// Unknown domains yield an empty slice, never an error.
type Directory interface {
	Lookup(domain string) []Leader
}

// LeaderCache is a local, time-bounded cache consulted before every other
// tier. Expired or unknown entries report a miss; writes are best effort.
type LeaderCache interface {
	Get(domain string) ([]Leader, bool)
	Put(domain string, leaders []Leader) error
}

// Gateway persists and retrieves company leader sets by domain.
// A nil result with a nil error means cache miss.
type Gateway interface {
	Get(ctx context.Context, domain string) (*CompanyRecord, error)
	Put(ctx context.Context, domain string, leaders []Leader) error
	Close()
}

// InterviewSearcher finds recent media appearances for a leader.
type InterviewSearcher interface {
	Search(ctx context.Context, leaderName, companyName string) ([]Interview, error)
}

// SnapshotStore archives raw page content and returns a URI.
type SnapshotStore interface {
	PutObject(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces record IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
