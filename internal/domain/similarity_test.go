package domain

import (
	"testing"
)

func similarityCorpus() []*Bookmark {
	return []*Bookmark{
		{
			ID:         "same-repo",
			URL:        "https://github.com/foo/bar/issues/1",
			Title:      "bar issue tracker",
			Category:   "development",
			Tags:       []string{"go"},
			AICategory: "development",
			AITags:     []string{"code", "programming", "development"},
		},
		{
			ID:         "other-repo",
			URL:        "https://github.com/foo/baz",
			Title:      "baz project",
			Category:   "development",
			Tags:       []string{},
			AICategory: "development",
			AITags:     []string{"code", "programming"},
		},
		{
			ID:       "unrelated",
			URL:      "https://recipes.example.org/pasta/carbonara",
			Title:    "Carbonara recipe",
			Category: "cooking",
			Tags:     []string{"food"},
		},
	}
}

func TestFindSimilar_Ranking(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())
	corpus := similarityCorpus()

	results := scorer.FindSimilar("https://github.com/foo/bar", corpus, 5)
	if len(results) == 0 {
		t.Fatal("expected similar bookmarks for same-domain corpus")
	}

	if results[0].Bookmark.ID != "same-repo" {
		t.Errorf("top result = %s, want same-repo", results[0].Bookmark.ID)
	}

	var sameDomainSeen bool
	for _, reason := range results[0].Reasons {
		if reason == "Same domain" {
			sameDomainSeen = true
		}
	}
	if !sameDomainSeen {
		t.Errorf("reasons = %v, want 'Same domain' present", results[0].Reasons)
	}

	for _, r := range results {
		if r.Bookmark.ID == "unrelated" {
			t.Error("unrelated-domain bookmark should not clear the minimum score")
		}
	}
}

func TestFindSimilar_Bounds(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())
	corpus := similarityCorpus()

	results := scorer.FindSimilar("https://github.com/foo/bar", corpus, 10)
	for _, r := range results {
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("score %v out of [0,1] for %s", r.Score, r.Bookmark.ID)
		}
		if r.Score <= DefaultHeuristics().MinScore {
			t.Errorf("score %v at or below minimum for %s", r.Score, r.Bookmark.ID)
		}
	}
}

func TestFindSimilar_ExcludesSelf(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())
	self := &Bookmark{ID: "self", URL: "https://github.com/foo/bar", Title: "bar", Category: "development"}
	corpus := append(similarityCorpus(), self)

	results := scorer.FindSimilar("https://github.com/foo/bar", corpus, 10)
	for _, r := range results {
		if r.Bookmark.ID == "self" {
			t.Error("target bookmark must not appear in its own similar list")
		}
	}
}

func TestFindSimilar_Limit(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())
	corpus := similarityCorpus()

	results := scorer.FindSimilar("https://github.com/foo/bar", corpus, 1)
	if len(results) > 1 {
		t.Errorf("got %d results, want at most 1", len(results))
	}
}

func TestFindSimilar_Degraded(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())

	t.Run("empty corpus", func(t *testing.T) {
		results := scorer.FindSimilar("https://github.com/foo/bar", nil, 5)
		if len(results) != 0 {
			t.Errorf("got %d results from empty corpus, want 0", len(results))
		}
	})

	t.Run("malformed target", func(t *testing.T) {
		results := scorer.FindSimilar("not a url", similarityCorpus(), 5)
		if len(results) != 0 {
			t.Errorf("got %d results for malformed target, want 0", len(results))
		}
	})

	t.Run("malformed candidate skipped", func(t *testing.T) {
		corpus := append(similarityCorpus(), &Bookmark{ID: "bad", URL: "::broken::", Title: "bad"})
		results := scorer.FindSimilar("https://github.com/foo/bar", corpus, 10)
		for _, r := range results {
			if r.Bookmark.ID == "bad" {
				t.Error("unparseable candidate should be skipped")
			}
		}
	})
}

func TestCategorizeURL(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://github.com/golang/go", want: "development"},
		{url: "https://www.youtube.com/watch?v=abc12345678", want: "entertainment"},
		{url: "https://www.bbc.co.uk/somewhere", want: "news"},
		{url: "https://example.com/python-tutorial", want: "learning"},
		{url: "https://www.amazon.de/dp/B000000", want: "shopping"},
		{url: "https://example.com/whatever", want: "general"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := scorer.CategorizeURL(tt.url); got != tt.want {
				t.Errorf("CategorizeURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestInferTags(t *testing.T) {
	scorer := NewSimilarityScorer(DefaultHeuristics())

	tags := scorer.InferTags("https://github.com/golang/go/blob/master/api/README")
	want := map[string]bool{"code": false, "programming": false, "development": false, "api": false}
	for _, tag := range tags {
		if _, ok := want[tag]; ok {
			want[tag] = true
		}
	}
	for tag, seen := range want {
		if !seen {
			t.Errorf("InferTags missing %q: %v", tag, tags)
		}
	}

	// No duplicates even when several rules emit the same tag.
	seen := map[string]int{}
	for _, tag := range scorer.InferTags("https://github.com/x/docs-tutorial/blob/api/docs") {
		seen[tag]++
		if seen[tag] > 1 {
			t.Errorf("duplicate tag %q", tag)
		}
	}
}
