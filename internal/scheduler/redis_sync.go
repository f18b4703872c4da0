package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
)

// RedisSyncer restores the memory index from Redis on startup when the
// export file is unavailable.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(store *redisstore.Store, idx *index.MemoryIndex, log logger.Logger) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads all bookmarks from Redis into the memory index. It is a no-op
// when Redis holds nothing.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	bookmarks, err := rs.store.GetAllBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bookmarks from redis: %w", err)
	}

	if len(bookmarks) == 0 {
		rs.logger.Info("no bookmarks in redis, skipping sync")
		return nil
	}

	rs.index.Update(bookmarks)
	rs.logger.Info("restored bookmark corpus from redis",
		logger.Int("count", len(bookmarks)))

	return nil
}
