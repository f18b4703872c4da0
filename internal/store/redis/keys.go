package redis

import "fmt"

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "marque:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmark IDs
	KeyAllBookmarks = "marque:bookmarks:all"
	// KeyPrefixDuplicate is the prefix for cached duplicate verdicts,
	// keyed by normalized URL
	KeyPrefixDuplicate = "marque:duplicate:"
)

// BookmarkKey returns the Redis key for a bookmark by ID
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// AllBookmarksKey returns the key for the set of all bookmark IDs
func AllBookmarksKey() string {
	return KeyAllBookmarks
}

// DuplicateKey returns the Redis key for a cached duplicate verdict
func DuplicateKey(normalizedURL string) string {
	return KeyPrefixDuplicate + normalizedURL
}

// ExtractBookmarkID extracts the bookmark ID from a Redis key
func ExtractBookmarkID(key string) (string, error) {
	if len(key) <= len(KeyPrefixBookmark) {
		return "", fmt.Errorf("invalid bookmark key: %s", key)
	}
	return key[len(KeyPrefixBookmark):], nil
}
