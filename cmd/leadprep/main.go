// Package main wires together the lead preparation service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/leadprep/leadprep/internal/analyzer"
	"github.com/leadprep/leadprep/internal/api"
	"github.com/leadprep/leadprep/internal/cache"
	"github.com/leadprep/leadprep/internal/clock/system"
	"github.com/leadprep/leadprep/internal/config"
	"github.com/leadprep/leadprep/internal/directory"
	"github.com/leadprep/leadprep/internal/id/uuid"
	"github.com/leadprep/leadprep/internal/interviews"
	"github.com/leadprep/leadprep/internal/leadprep"
	"github.com/leadprep/leadprep/internal/logging"
	"github.com/leadprep/leadprep/internal/scraper"
	localsnapshot "github.com/leadprep/leadprep/internal/snapshot/local"
	memorysnapshot "github.com/leadprep/leadprep/internal/snapshot/memory"
	"github.com/leadprep/leadprep/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := system.New()
	idGen := uuid.New()

	var snapshots leadprep.SnapshotStore
	if cfg.Snapshot.Enabled {
		switch cfg.Snapshot.Backend {
		case "memory":
			snapshots = memorysnapshot.New()
		default:
			snapshots, err = localsnapshot.New(localsnapshot.Config{BaseDir: cfg.Snapshot.BaseDir})
			if err != nil {
				logger.Fatal("snapshot store init failed", zap.Error(err))
			}
		}
	}

	var leaderCache leadprep.LeaderCache
	if cfg.Cache.Enabled {
		fileCache, err := cache.NewFile(cache.Config{
			Dir:    cfg.Cache.Dir,
			MaxAge: cfg.CacheMaxAge(),
		}, clock)
		if err != nil {
			logger.Fatal("leader cache init failed", zap.Error(err))
		}
		leaderCache = fileCache
	}

	scrape, err := scraper.New(scraper.Config{
		UserAgent:           cfg.Scraper.UserAgent,
		FetchTimeout:        cfg.FetchTimeout(),
		Budget:              cfg.ScrapeBudget(),
		MaxLeaders:          cfg.Scraper.MaxLeaders,
		CandidatePaths:      cfg.Scraper.CandidatePaths,
		TitleVocabulary:     cfg.Scraper.TitleVocabulary,
		SnapshotPrefix:      cfg.Snapshot.Prefix,
		SnapshotContentType: cfg.Snapshot.ContentType,
	}, snapshots, logger.Named("scraper"))
	if err != nil {
		logger.Fatal("scraper init failed", zap.Error(err))
	}

	var gateway leadprep.Gateway
	if cfg.DB.DSN != "" {
		pg, err := store.NewPostgres(ctx, store.PostgresConfig{
			DSN:      cfg.DB.DSN,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		}, idGen, clock)
		if err != nil {
			logger.Fatal("postgres init failed", zap.Error(err))
		}
		defer pg.Close()
		gateway = pg
	} else {
		logger.Info("no database configured, cache tier disabled")
		gateway = store.NoOp{}
	}

	var searcher leadprep.InterviewSearcher
	if cfg.YouTube.APIKey != "" {
		yt, err := interviews.NewYouTube(ctx, interviews.Config{
			APIKey:            cfg.YouTube.APIKey,
			MaxResults:        int64(cfg.YouTube.MaxResults),
			Window:            time.Duration(cfg.YouTube.WindowDays) * 24 * time.Hour,
			RegionCode:        cfg.YouTube.RegionCode,
			RelevanceLanguage: cfg.YouTube.RelevanceLang,
		}, clock, logger.Named("interviews"))
		if err != nil {
			logger.Fatal("youtube searcher init failed", zap.Error(err))
		}
		searcher = yt
	} else {
		logger.Info("no youtube api key configured, interview search disabled")
	}

	an := analyzer.New(
		scrape,
		directory.New(directory.Seed()),
		gateway,
		leaderCache,
		analyzer.Config{CacheEnabled: cfg.DB.CacheEnabled},
		logger.Named("analyzer"),
	)

	apiServer := api.NewServer(an, searcher, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
