package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
	"github.com/MrSnakeDoc/marque/internal/sources/bookmarkfile"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
)

// CorpusReloader handles periodic reloading of the bookmarks.json export
// into the memory index and Redis.
type CorpusReloader struct {
	loader        *bookmarkfile.Loader
	mapper        *bookmarkfile.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCorpusReloader creates a new corpus reloader
func NewCorpusReloader(
	bookmarkFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CorpusReloader {
	return &CorpusReloader{
		loader:        bookmarkfile.NewLoader(bookmarkFile),
		mapper:        bookmarkfile.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the corpus immediately, then keeps reloading on the interval
// or whenever the manual trigger fires. The loop runs even when the initial
// load fails so a later file drop or manual trigger can recover.
func (cr *CorpusReloader) Start(ctx context.Context) error {
	initialErr := cr.Reload(ctx)

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload corpus",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual corpus reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload corpus",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	if initialErr != nil {
		return fmt.Errorf("initial corpus reload failed: %w", initialErr)
	}
	return nil
}

// Stop stops the reloader
func (cr *CorpusReloader) Stop() {
	close(cr.stopCh)
}

// Reload reads the export file and replaces the memory index contents.
// Redis persistence is best effort; the memory index is the source of truth.
func (cr *CorpusReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading bookmark corpus from file")

	export, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	result := cr.mapper.Map(export)
	if result.Skipped > 0 {
		cr.logger.Warn("skipped malformed bookmark entries",
			logger.Int("skipped", result.Skipped))
	}

	cr.logger.Info("loaded bookmark corpus",
		logger.Int("count", len(result.Bookmarks)))

	cr.index.Update(result.Bookmarks)

	if cr.store != nil {
		if err := cr.store.SaveBookmarksMany(ctx, result.Bookmarks); err != nil {
			cr.logger.Warn("failed to save corpus to redis",
				logger.Error(err))
		} else {
			cr.logger.Info("corpus saved to redis")
		}

		// Any cached duplicate verdict may now be stale.
		if err := cr.store.FlushDuplicateCache(ctx); err != nil {
			cr.logger.Warn("failed to flush duplicate cache",
				logger.Error(err))
		}
	}

	return nil
}
