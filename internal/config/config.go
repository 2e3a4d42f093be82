// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Cache    CacheConfig    `mapstructure:"cache"`
	DB       DBConfig       `mapstructure:"db"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig defines API authentication toggles.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// ScraperConfig governs leadership-page probing and extraction heuristics.
// CandidatePaths and TitleVocabulary are data, not code, so heuristics can be
// extended without a rebuild.
type ScraperConfig struct {
	UserAgent       string   `mapstructure:"user_agent"`
	FetchTimeoutSec int      `mapstructure:"fetch_timeout_seconds"`
	BudgetSec       int      `mapstructure:"budget_seconds"`
	MaxLeaders      int      `mapstructure:"max_leaders"`
	CandidatePaths  []string `mapstructure:"candidate_paths"`
	TitleVocabulary []string `mapstructure:"title_vocabulary"`
}

// CacheConfig controls the local leader cache consulted before any other
// tier. Entries older than MaxAgeDays are treated as misses.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Dir        string `mapstructure:"dir"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DBConfig controls the optional Postgres cache gateway.
type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	Table        string `mapstructure:"table"`
	MaxConns     int32  `mapstructure:"max_conns"`
	MinConns     int32  `mapstructure:"min_conns"`
	CacheEnabled bool   `mapstructure:"cache_enabled"`
}

// SnapshotConfig sets where raw leadership pages are archived. Backend picks
// the store implementation: "local" writes under BaseDir, "memory" keeps
// snapshots in-process (development only).
type SnapshotConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Backend     string `mapstructure:"backend"`
	BaseDir     string `mapstructure:"base_dir"`
	Prefix      string `mapstructure:"prefix"`
	ContentType string `mapstructure:"content_type"`
}

// YouTubeConfig holds interview-search settings. The API key comes from the
// environment; an empty key disables the searcher.
type YouTubeConfig struct {
	APIKey        string `mapstructure:"api_key"`
	MaxResults    int    `mapstructure:"max_results"`
	WindowDays    int    `mapstructure:"window_days"`
	TimeoutSec    int    `mapstructure:"timeout_seconds"`
	RegionCode    string `mapstructure:"region_code"`
	RelevanceLang string `mapstructure:"relevance_language"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEADPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	// Every key needs a default (empty is fine): AutomaticEnv only surfaces
	// environment values for keys viper already knows about, so secrets like
	// LEADPREP_DB_DSN would otherwise be dropped when no config file is used.
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.api_key", "")
	v.SetDefault("logging.development", true)
	v.SetDefault("scraper.user_agent", "leadprep-bot/0.1")
	v.SetDefault("scraper.fetch_timeout_seconds", 4)
	v.SetDefault("scraper.budget_seconds", 15)
	v.SetDefault("scraper.max_leaders", 10)
	v.SetDefault("scraper.candidate_paths", []string{
		"/about",
		"/about-us",
		"/about/leadership",
		"/about/team",
		"/leadership",
		"/team",
		"/executives",
		"/management",
		"/company/leadership",
		"/leadership-team",
		"/executive-team",
		"",
	})
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.max_age_days", 30)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.table", "companies")
	v.SetDefault("db.max_conns", 0)
	v.SetDefault("db.min_conns", 0)
	v.SetDefault("db.cache_enabled", true)
	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.backend", "local")
	v.SetDefault("snapshot.base_dir", "")
	v.SetDefault("snapshot.prefix", "pages")
	v.SetDefault("snapshot.content_type", "text/html; charset=utf-8")
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.max_results", 10)
	v.SetDefault("youtube.window_days", 180)
	v.SetDefault("youtube.timeout_seconds", 30)
	v.SetDefault("youtube.region_code", "")
	v.SetDefault("youtube.relevance_language", "en")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Scraper.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	if c.Scraper.FetchTimeoutSec <= 0 {
		return fmt.Errorf("scraper.fetch_timeout_seconds must be > 0")
	}
	if c.Scraper.BudgetSec <= 0 {
		return fmt.Errorf("scraper.budget_seconds must be > 0")
	}
	if c.Scraper.MaxLeaders <= 0 {
		return fmt.Errorf("scraper.max_leaders must be > 0")
	}
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key must be set when auth is enabled")
	}
	if c.Cache.Enabled {
		if c.Cache.Dir == "" {
			return fmt.Errorf("cache.dir must be set when the cache is enabled")
		}
		if c.Cache.MaxAgeDays <= 0 {
			return fmt.Errorf("cache.max_age_days must be > 0")
		}
	}
	if c.Snapshot.Enabled {
		switch c.Snapshot.Backend {
		case "memory":
		case "local":
			if c.Snapshot.BaseDir == "" {
				return fmt.Errorf("snapshot.base_dir must be set for the local backend")
			}
		default:
			return fmt.Errorf("snapshot.backend must be one of: local, memory")
		}
	}
	return nil
}

// FetchTimeout converts the per-request timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Scraper.FetchTimeoutSec) * time.Second
}

// ScrapeBudget converts the whole-scrape wall-clock budget into a duration.
func (c Config) ScrapeBudget() time.Duration {
	return time.Duration(c.Scraper.BudgetSec) * time.Second
}

// CacheMaxAge converts the cache age limit into a duration.
func (c Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Cache.MaxAgeDays) * 24 * time.Hour
}
