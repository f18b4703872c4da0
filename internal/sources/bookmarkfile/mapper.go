package bookmarkfile

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/MrSnakeDoc/marque/internal/domain"
)

// Mapper converts export entries to domain bookmarks
type Mapper struct{}

// NewMapper creates a new bookmark mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapResult reports what a mapping pass produced. Skipped counts entries
// dropped for missing/invalid required fields; one bad record never fails
// the whole file.
type MapResult struct {
	Bookmarks []*domain.Bookmark
	Skipped   int
}

// Map converts an Export to domain bookmarks, preserving file order.
// Entries without a URL or title are skipped. A missing ID is derived from
// the URL hash so re-exports keep stable identifiers; unparseable timestamps
// fall back to zero times rather than dropping the entry.
func (m *Mapper) Map(export Export) MapResult {
	bookmarks := make([]*domain.Bookmark, 0, len(export))
	skipped := 0

	for _, e := range export {
		if e.URL == "" || e.Title == "" {
			skipped++
			continue
		}

		id := e.ID
		if id == "" {
			id = deriveID(e.URL)
		}

		bookmarks = append(bookmarks, &domain.Bookmark{
			ID:          id,
			URL:         e.URL,
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
			Tags:        emptyIfNil(e.Tags),
			AISummary:   e.AISummary,
			AITags:      e.AITags,
			AICategory:  e.AICategory,
			CreatedAt:   parseTime(e.CreatedAt),
			UpdatedAt:   parseTime(e.UpdatedAt),
		})
	}

	return MapResult{Bookmarks: bookmarks, Skipped: skipped}
}

// deriveID creates a stable ID from a URL using SHA-256.
// The same URL always produces the same ID across exports.
func deriveID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func emptyIfNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
