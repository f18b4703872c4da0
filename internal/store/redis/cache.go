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

// DefaultDuplicateTTL is how long a duplicate verdict stays cached.
// Short on purpose: the corpus changes whenever the user saves a bookmark.
const DefaultDuplicateTTL = 10 * time.Minute

// CacheDuplicateVerdict stores a duplicate verdict keyed by the candidate's
// normalized URL.
func (s *Store) CacheDuplicateVerdict(ctx context.Context, normalizedURL string, verdict *domain.DuplicateVerdict, ttl time.Duration) error {
	data, err := json.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	if err := s.client.Set(ctx, DuplicateKey(normalizedURL), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache verdict: %w", err)
	}
	return nil
}

// GetCachedDuplicateVerdict retrieves a cached verdict, or nil on a miss.
func (s *Store) GetCachedDuplicateVerdict(ctx context.Context, normalizedURL string) (*domain.DuplicateVerdict, error) {
	data, err := s.client.Get(ctx, DuplicateKey(normalizedURL)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("failed to get cached verdict: %w", err)
	}

	var verdict domain.DuplicateVerdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached verdict: %w", err)
	}
	return &verdict, nil
}

// FlushDuplicateCache removes all cached verdicts. Called after every corpus
// reload since any of them may be stale.
func (s *Store) FlushDuplicateCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixDuplicate+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush duplicate cache: %w", err)
	}
	return nil
}
