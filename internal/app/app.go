package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marque/internal/config"
	"github.com/MrSnakeDoc/marque/internal/domain"
	"github.com/MrSnakeDoc/marque/internal/httpserver"
	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
	"github.com/MrSnakeDoc/marque/internal/redis"
	"github.com/MrSnakeDoc/marque/internal/scheduler"
	"github.com/MrSnakeDoc/marque/internal/sources/heuristicsfile"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
	"github.com/MrSnakeDoc/marque/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.CorpusReloader
	pruner      *scheduler.StorePruner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Scoring heuristics: built-in tables, optionally overridden from YAML
	heuristics, err := heuristicsfile.Load(cfg.HeuristicsFile, domain.DefaultHeuristics())
	if err != nil {
		loggerClient.Errorf("Failed to load heuristics overrides: %v", err)
		os.Exit(1)
	}
	if cfg.HeuristicsFile != "" {
		loggerClient.Info("heuristics overrides loaded",
			logger.String("file", cfg.HeuristicsFile))
	}

	memIndex := index.NewMemoryIndex()
	store := redisstore.NewStore(redisClient)

	// Try to restore the corpus from Redis before the first file load
	syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync from redis on startup, will load from file",
			logger.Error(err))
	}

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCorpusReloader(
		cfg.BookmarkFile,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	pruner := scheduler.NewStorePruner(
		store,
		memIndex,
		loggerClient,
		cfg.PruneInterval,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RedisClient:     redisClient,
		Store:           store,
		MemoryIndex:     memIndex,
		Detector:        domain.NewDuplicateDetector(domain.DefaultDetectorConfig()),
		Scorer:          domain.NewSimilarityScorer(heuristics),
		SearchLimit:     cfg.SearchLimit,
		SimilarLimit:    cfg.SimilarLimit,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		pruner:      pruner,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Marque v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Marque %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start corpus reloader (loads bookmarks and starts periodic refresh).
	// The initial load may fail when the file is missing; keep serving
	// whatever the Redis sync restored.
	if err := a.reloader.Start(ctx); err != nil {
		if a.memIndex.Count() == 0 {
			return fmt.Errorf("failed to start corpus reloader with empty index: %w", err)
		}
		a.logger.Warn("corpus file unavailable, serving redis snapshot",
			logger.Error(err))
	} else {
		a.logger.Info("corpus reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	a.pruner.Start(ctx)
	a.logger.Info("store pruner started",
		logger.Duration("interval", a.cfg.PruneInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Marque stopped cleanly")
	return nil
}
