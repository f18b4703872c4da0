package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/marque/internal/domain"
)

// MemoryIndex holds the in-memory bookmark corpus the engine scores against.
// It is the source of truth at request time; Redis is only a secondary copy.
//
// The corpus keeps its load order: search relevance ties break by corpus
// order under a stable sort, so iteration must be deterministic (a bare map
// would reshuffle results between calls).
type MemoryIndex struct {
	mu         sync.RWMutex
	ordered    []*domain.Bookmark
	byID       map[string]*domain.Bookmark
	lastReload time.Time
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		byID: make(map[string]*domain.Bookmark),
	}
}

// Update replaces the whole corpus, preserving the given order.
// Entries with a duplicate ID keep the first occurrence.
func (idx *MemoryIndex) Update(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.ordered = make([]*domain.Bookmark, 0, len(bookmarks))
	idx.byID = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		if _, exists := idx.byID[b.ID]; exists {
			continue
		}
		idx.byID[b.ID] = b
		idx.ordered = append(idx.ordered, b)
	}
	idx.lastReload = time.Now()
}

// Get retrieves a bookmark by ID.
func (idx *MemoryIndex) Get(id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	b, ok := idx.byID[id]
	return b, ok
}

// All returns the corpus in load order. The returned slice is a copy;
// callers may not mutate the bookmarks it points to.
func (idx *MemoryIndex) All() []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.Bookmark, len(idx.ordered))
	copy(out, idx.ordered)
	return out
}

// Count returns the corpus size.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.ordered)
}

// LastReload returns when the corpus was last replaced.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
