package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marque/internal/domain"
)

const (
	// DefaultBookmarkTTL is the default TTL for bookmark entries (48 hours).
	// The corpus file is authoritative; Redis entries only need to survive
	// between reloads.
	DefaultBookmarkTTL = 48 * time.Hour
)

// Store handles Redis persistence for the bookmark corpus and the
// duplicate-verdict cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// GetBookmark retrieves a bookmark from Redis by ID
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	key := BookmarkKey(id)
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("bookmark not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var bookmark domain.Bookmark
	if err := json.Unmarshal(data, &bookmark); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}

	return &bookmark, nil
}

// GetAllBookmarks retrieves all bookmarks from Redis.
// Entries that cannot be fetched or decoded are skipped, not fatal.
func (s *Store) GetAllBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, AllBookmarksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		bookmark, err := s.GetBookmark(ctx, id)
		if err != nil {
			continue
		}
		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, nil
}

// DeleteBookmark removes a bookmark from Redis
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	key := BookmarkKey(id)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if err := s.client.SRem(ctx, AllBookmarksKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark from set: %w", err)
	}

	return nil
}

// SaveBookmarksMany stores multiple bookmarks in Redis (bulk operation)
func (s *Store) SaveBookmarksMany(ctx context.Context, bookmarks []*domain.Bookmark) error {
	pipe := s.client.Pipeline()

	for _, bookmark := range bookmarks {
		data, err := json.Marshal(bookmark)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmark %s: %w", bookmark.ID, err)
		}

		key := BookmarkKey(bookmark.ID)
		pipe.Set(ctx, key, data, DefaultBookmarkTTL)
		pipe.SAdd(ctx, AllBookmarksKey(), bookmark.ID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}

	return nil
}

// ListBookmarkIDs returns the IDs of every bookmark currently persisted.
// It scans the actual bookmark keys rather than the id set, so entries
// orphaned from the set are still reported (and can be pruned).
func (s *Store) ListBookmarkIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, 64)

	iter := s.client.Scan(ctx, 0, KeyPrefixBookmark+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := ExtractBookmarkID(iter.Val())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list bookmark IDs: %w", err)
	}

	return ids, nil
}
