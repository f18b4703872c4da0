package integration

import (
	"testing"

	"github.com/MrSnakeDoc/marque/internal/domain"
)

func corpus() []*domain.Bookmark {
	return []*domain.Bookmark{
		{
			ID:          "react-tutorial",
			URL:         "https://react.dev/learn/thinking-in-react",
			Title:       "Thinking in React",
			Description: "Official React tutorial on component design",
			Category:    "development",
			Tags:        []string{"react", "tutorial", "frontend"},
		},
		{
			ID:          "vue-guide",
			URL:         "https://vuejs.org/guide/introduction.html",
			Title:       "Vue.js Guide",
			Description: "Introduction to the Vue framework",
			Category:    "development",
			Tags:        []string{"vue", "frontend"},
		},
		{
			ID:          "go-blog",
			URL:         "https://go.dev/blog/error-handling",
			Title:       "Error handling in Go",
			Description: "Patterns for error handling",
			Category:    "development",
			Tags:        []string{"go", "errors"},
		},
		{
			ID:       "yt-talk",
			URL:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			Title:    "Conference talk",
			Category: "entertainment",
		},
		{
			ID:       "news-site",
			URL:      "https://news.ycombinator.com/",
			Title:    "Hacker News",
			Category: "news",
		},
	}
}

// TestSearchScenarios exercises end-to-end relevance ranking over a mixed corpus.
func TestSearchScenarios(t *testing.T) {
	bookmarks := corpus()

	tests := []struct {
		name        string
		query       string
		expectedTop string // expected top result id
		description string
	}{
		{
			name:        "title match dominates",
			query:       "react",
			expectedTop: "react-tutorial",
			description: "Title plus tag hits should outrank everything else",
		},
		{
			name:        "description terms",
			query:       "error handling",
			expectedTop: "go-blog",
			description: "Multi-token query matched in title and description",
		},
		{
			name:        "tag only",
			query:       "frontend",
			expectedTop: "react-tutorial",
			description: "Tag matches keep corpus order on ties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := domain.Search(tt.query, bookmarks, domain.SearchFilters{})
			if len(results) == 0 {
				t.Fatalf("%s: no results for %q", tt.description, tt.query)
			}
			if results[0].Bookmark.ID != tt.expectedTop {
				t.Errorf("%s: top = %s, want %s (score %.2f)",
					tt.description, results[0].Bookmark.ID, tt.expectedTop, results[0].Score)
			}
			for i := 1; i < len(results); i++ {
				if results[i].Score > results[i-1].Score {
					t.Errorf("results not sorted by score at index %d", i)
				}
			}
		})
	}
}

// TestDuplicateScenarios exercises the full normalize + pattern pipeline.
func TestDuplicateScenarios(t *testing.T) {
	bookmarks := corpus()
	detector := domain.NewDuplicateDetector(domain.DefaultDetectorConfig())

	tests := []struct {
		name          string
		url           string
		wantDuplicate bool
		wantMatchType domain.MatchType
	}{
		{
			name:          "tracking params and www stripped",
			url:           "https://WWW.react.dev/learn/thinking-in-react/?utm_source=tw",
			wantDuplicate: true,
			wantMatchType: domain.MatchExact,
		},
		{
			name:          "short youtube link same video",
			url:           "https://youtu.be/dQw4w9WgXcQ",
			wantDuplicate: true,
			wantMatchType: domain.MatchSimilar,
		},
		{
			name:          "unknown url",
			url:           "https://example.org/something",
			wantDuplicate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := detector.Check(tt.url, bookmarks)
			if verdict.IsDuplicate != tt.wantDuplicate {
				t.Fatalf("IsDuplicate = %v, want %v (reason: %s)",
					verdict.IsDuplicate, tt.wantDuplicate, verdict.Reason)
			}
			if tt.wantDuplicate && verdict.MatchType != tt.wantMatchType {
				t.Errorf("MatchType = %s, want %s", verdict.MatchType, tt.wantMatchType)
			}
		})
	}
}

// TestSimilarityScenarios checks that related content surfaces and noise does not.
func TestSimilarityScenarios(t *testing.T) {
	bookmarks := corpus()
	scorer := domain.NewSimilarityScorer(domain.DefaultHeuristics())

	results := scorer.FindSimilar("https://react.dev/learn/describing-the-ui", bookmarks, 10)
	if len(results) == 0 {
		t.Fatal("expected similar bookmarks for a react.dev URL")
	}
	if results[0].Bookmark.ID != "react-tutorial" {
		t.Errorf("top similar = %s, want react-tutorial", results[0].Bookmark.ID)
	}
	for _, res := range results {
		if res.Bookmark.ID == "news-site" {
			t.Error("unrelated news site should not pass the similarity floor")
		}
		if res.Score <= 0.3 || res.Score > 1.0 {
			t.Errorf("score %f outside (0.3, 1.0]", res.Score)
		}
	}
}
