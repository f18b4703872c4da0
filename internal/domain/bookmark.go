package domain

import "time"

// Bookmark represents a single saved URL as exported by the bookmark manager.
//
// The engine treats bookmarks as read-only: scoring never mutates the corpus
// it is given. AI-prefixed fields are produced by the upstream enrichment
// pipeline and may be absent on older entries.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier assigned at save time.
	ID string `json:"id"`

	// URL is the saved absolute URL.
	// Example: https://github.com/golang/go
	URL string `json:"url"`

	// ─────────────────────────────
	// User-supplied metadata
	// ─────────────────────────────

	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`

	// ─────────────────────────────
	// AI enrichment (optional)
	// ─────────────────────────────

	AISummary  string   `json:"ai_summary,omitempty"`
	AITags     []string `json:"ai_tags,omitempty"`
	AICategory string   `json:"ai_category,omitempty"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookmarkSummary is the trimmed view of an existing bookmark returned by
// duplicate checks.
type BookmarkSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary converts a bookmark to its duplicate-check view.
func (b *Bookmark) Summary() *BookmarkSummary {
	return &BookmarkSummary{
		ID:        b.ID,
		Title:     b.Title,
		URL:       b.URL,
		Category:  b.Category,
		Tags:      b.Tags,
		CreatedAt: b.CreatedAt,
	}
}

// SearchResult is one scored bookmark produced by Search.
// Results are ephemeral: constructed per call, discarded after serialization.
type SearchResult struct {
	Bookmark      *Bookmark
	Score         float64
	MatchedFields []string
}

// SimilarityResult is one scored bookmark produced by FindSimilar.
// Reasons lists the human-readable factors that contributed to the score.
type SimilarityResult struct {
	Bookmark *Bookmark
	Score    float64
	Reasons  []string
}

// MatchType classifies how a duplicate was found.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchSimilar MatchType = "similar"
)

// DuplicateVerdict is the outcome of checking a candidate URL against the
// corpus. A non-duplicate outcome is a valid result, not an error.
type DuplicateVerdict struct {
	IsDuplicate bool             `json:"isDuplicate"`
	Existing    *BookmarkSummary `json:"existing"`
	MatchType   MatchType        `json:"matchType,omitempty"`
	Similarity  float64          `json:"similarity,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}
