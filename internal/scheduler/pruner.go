package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
)

// StorePruner periodically removes Redis entries for bookmarks that no
// longer exist in the memory index.
type StorePruner struct {
	store    *redisstore.Store
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewStorePruner creates a new store pruner
func NewStorePruner(store *redisstore.Store, idx *index.MemoryIndex, log logger.Logger, interval time.Duration) *StorePruner {
	return &StorePruner{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the pruner loop until Stop is called or the context ends.
func (sp *StorePruner) Start(ctx context.Context) {
	if sp.store == nil {
		sp.logger.Info("store pruner disabled, no redis store")
		return
	}

	ticker := time.NewTicker(sp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sp.Prune(ctx); err != nil {
					sp.logger.Warn("store prune failed", logger.Error(err))
				}
			case <-sp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the pruner
func (sp *StorePruner) Stop() {
	close(sp.stopCh)
}

// Prune deletes every stored bookmark whose id is absent from the index.
func (sp *StorePruner) Prune(ctx context.Context) error {
	if sp.store == nil {
		return nil
	}

	ids, err := sp.store.ListBookmarkIDs(ctx)
	if err != nil {
		return err
	}

	removed := 0
	for _, id := range ids {
		if _, ok := sp.index.Get(id); ok {
			continue
		}
		if err := sp.store.DeleteBookmark(ctx, id); err != nil {
			sp.logger.Warn("failed to delete stale bookmark",
				logger.String("id", id),
				logger.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		sp.logger.Info("pruned stale bookmarks from redis",
			logger.Int("removed", removed))
	}

	return nil
}
