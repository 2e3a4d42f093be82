// Package cache implements a local, time-bounded leader cache. Each domain is
// one JSON file under the cache directory; entries older than the configured
// max age are treated as misses.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// Config captures the parameters for the file-backed leader cache.
type Config struct {
	// Dir is the directory where cache entries are stored.
	Dir string `mapstructure:"dir"`
	// MaxAge is how long an entry stays fresh.
	MaxAge time.Duration `mapstructure:"max_age"`
}

// File implements leadprep.LeaderCache on the local filesystem.
type File struct {
	dir    string
	maxAge time.Duration
	clock  leadprep.Clock
	mu     sync.Mutex
}

type entry struct {
	Domain   string            `json:"domain"`
	Leaders  []leadprep.Leader `json:"leaders"`
	CachedAt time.Time         `json:"cached_at"`
}

// NewFile creates a file-backed cache rooted at cfg.Dir, creating the
// directory if needed.
func NewFile(cfg Config, clock leadprep.Clock) (*File, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 30 * 24 * time.Hour
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &File{dir: cfg.Dir, maxAge: cfg.MaxAge, clock: clock}, nil
}

// Get returns the cached leaders for a domain. Unknown, unreadable, and
// expired entries all report a miss; expired files are removed on read.
func (c *File) Get(domain string) ([]leadprep.Leader, bool) {
	path, err := c.entryPath(domain)
	if err != nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if c.clock.Now().Sub(e.CachedAt) > c.maxAge {
		_ = os.Remove(path)
		return nil, false
	}
	return append([]leadprep.Leader(nil), e.Leaders...), true
}

// Put stores the leader set for a domain, stamping it with the current time.
func (c *File) Put(domain string, leaders []leadprep.Leader) error {
	path, err := c.entryPath(domain)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry{
		Domain:   domain,
		Leaders:  leaders,
		CachedAt: c.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// entryPath maps a domain to its cache file, rejecting names that would
// escape the cache directory.
func (c *File) entryPath(domain string) (string, error) {
	if domain == "" || strings.ContainsAny(domain, `/\`) || strings.Contains(domain, "..") {
		return "", fmt.Errorf("invalid cache key %q", domain)
	}
	return filepath.Join(c.dir, domain+".json"), nil
}
