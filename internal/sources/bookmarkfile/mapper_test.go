package bookmarkfile

import (
	"testing"
	"time"
)

func TestMapper_Map(t *testing.T) {
	mapper := NewMapper()

	export := Export{
		{
			ID:        "bm1",
			URL:       "https://example.com/a",
			Title:     "A",
			Category:  "general",
			Tags:      []string{"x"},
			CreatedAt: "2025-02-01T10:00:00Z",
			UpdatedAt: "2025-02-02T10:00:00Z",
		},
		{
			// missing title -> skipped
			ID:  "bm2",
			URL: "https://example.com/b",
		},
		{
			// missing id -> derived from URL
			URL:   "https://example.com/c",
			Title: "C",
		},
	}

	result := mapper.Map(export)

	if len(result.Bookmarks) != 2 {
		t.Fatalf("got %d bookmarks, want 2", len(result.Bookmarks))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}

	first := result.Bookmarks[0]
	if first.ID != "bm1" {
		t.Errorf("ID = %s, want bm1", first.ID)
	}
	want := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	if !first.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, want)
	}

	derived := result.Bookmarks[1]
	if derived.ID == "" {
		t.Error("missing ID should be derived, not empty")
	}
	if len(derived.ID) != 16 {
		t.Errorf("derived ID length = %d, want 16", len(derived.ID))
	}
}

func TestMapper_StableDerivedIDs(t *testing.T) {
	mapper := NewMapper()
	export := Export{{URL: "https://example.com/x", Title: "X"}}

	a := mapper.Map(export).Bookmarks[0].ID
	b := mapper.Map(export).Bookmarks[0].ID
	if a != b {
		t.Errorf("derived IDs differ across runs: %s != %s", a, b)
	}
}

func TestMapper_BadTimestampsKeptAsZero(t *testing.T) {
	mapper := NewMapper()
	export := Export{{ID: "bm", URL: "https://example.com", Title: "T", CreatedAt: "yesterday"}}

	result := mapper.Map(export)
	if len(result.Bookmarks) != 1 {
		t.Fatalf("entry with bad timestamp should not be dropped")
	}
	if !result.Bookmarks[0].CreatedAt.IsZero() {
		t.Errorf("CreatedAt = %v, want zero time", result.Bookmarks[0].CreatedAt)
	}
}

func TestMapper_PreservesOrder(t *testing.T) {
	mapper := NewMapper()
	export := Export{
		{ID: "z", URL: "https://z.example", Title: "Z"},
		{ID: "a", URL: "https://a.example", Title: "A"},
	}

	result := mapper.Map(export)
	if result.Bookmarks[0].ID != "z" || result.Bookmarks[1].ID != "a" {
		t.Errorf("file order not preserved: %s, %s", result.Bookmarks[0].ID, result.Bookmarks[1].ID)
	}
}
