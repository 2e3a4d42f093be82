// Package interviews finds recent media appearances for company leaders.
package interviews

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/leadprep/leadprep/internal/leadprep"
)

// Config controls YouTube interview search behavior.
type Config struct {
	APIKey            string
	MaxResults        int64
	Window            time.Duration
	RegionCode        string
	RelevanceLanguage string
}

// YouTube implements leadprep.InterviewSearcher against the YouTube Data API.
type YouTube struct {
	service *youtube.Service
	cfg     Config
	clock   leadprep.Clock
	logger  *zap.Logger
}

// NewYouTube constructs a searcher. extra options are primarily for testing
// (endpoint override, custom HTTP client).
func NewYouTube(ctx context.Context, cfg Config, clock leadprep.Clock, logger *zap.Logger, extra ...option.ClientOption) (*YouTube, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube api key is required")
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.Window <= 0 {
		cfg.Window = 180 * 24 * time.Hour
	}
	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, extra...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTube{service: service, cfg: cfg, clock: clock, logger: logger}, nil
}

// Search looks up recent interview videos for a leader. The query is kept
// deliberately simple ("<name> interview"); company names add noise without
// improving relevance, so companyName is not folded into the query.
func (y *YouTube) Search(ctx context.Context, leaderName, companyName string) ([]leadprep.Interview, error) {
	query := leaderName + " interview"
	publishedAfter := y.clock.Now().Add(-y.cfg.Window).Format(time.RFC3339)

	call := y.service.Search.List([]string{"snippet"}).
		Context(ctx).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(y.cfg.MaxResults).
		PublishedAfter(publishedAfter)
	if y.cfg.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(y.cfg.RelevanceLanguage)
	}
	if y.cfg.RegionCode != "" {
		call = call.RegionCode(y.cfg.RegionCode)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search for %q: %w", query, err)
	}

	results := make([]leadprep.Interview, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}
		results = append(results, leadprep.Interview{
			Title:        item.Snippet.Title,
			URL:          "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
		})
	}
	y.logger.Debug("interview search completed",
		zap.String("leader", leaderName),
		zap.String("company", companyName),
		zap.Int("results", len(results)),
	)
	return results, nil
}
