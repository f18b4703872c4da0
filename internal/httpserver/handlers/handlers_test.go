package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrSnakeDoc/marque/internal/domain"
	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/index"
	"github.com/MrSnakeDoc/marque/internal/logger"
)

func testDeps(bookmarks []*domain.Bookmark) deps.Deps {
	memIndex := index.NewMemoryIndex()
	memIndex.Update(bookmarks)

	return deps.Deps{
		Logger:       logger.New("error", false),
		StartTime:    time.Now(),
		MemoryIndex:  memIndex,
		Detector:     domain.NewDuplicateDetector(domain.DefaultDetectorConfig()),
		Scorer:       domain.NewSimilarityScorer(domain.DefaultHeuristics()),
		SearchLimit:  20,
		SimilarLimit: 5,
	}
}

func testCorpus() []*domain.Bookmark {
	return []*domain.Bookmark{
		{
			ID:       "b1",
			URL:      "https://react.dev/learn",
			Title:    "React Tutorial",
			Category: "development",
			Tags:     []string{"react", "frontend"},
		},
		{
			ID:       "b2",
			URL:      "https://go.dev/doc",
			Title:    "Go Documentation",
			Category: "development",
			Tags:     []string{"go", "backend"},
		},
		{
			ID:    "b3",
			URL:   "https://github.com/golang/go",
			Title: "Go source mirror",
		},
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/search", nil)
	rec := httptest.NewRecorder()
	Search(d)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected error message in body")
	}
}

func TestSearch_RanksMatches(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/search?q=react", nil)
	rec := httptest.NewRecorder()
	Search(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Total != 1 {
		t.Fatalf("expected 1 match, got %d", body.Total)
	}
	if body.Bookmarks[0].ID != "b1" {
		t.Errorf("expected b1 first, got %s", body.Bookmarks[0].ID)
	}
	if body.Bookmarks[0].SearchScore <= 0 {
		t.Errorf("expected positive score, got %f", body.Bookmarks[0].SearchScore)
	}
	if body.Query != "react" {
		t.Errorf("expected query echoed back, got %q", body.Query)
	}
}

func TestSearch_Pagination(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/search?q=go&limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	Search(d)(rec, req)

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Total < 2 {
		t.Fatalf("expected at least 2 total matches, got %d", body.Total)
	}
	if len(body.Bookmarks) != 1 {
		t.Errorf("expected 1 bookmark in page, got %d", len(body.Bookmarks))
	}
	if body.Limit != 1 || body.Offset != 1 {
		t.Errorf("expected limit=1 offset=1 echoed back, got %d/%d", body.Limit, body.Offset)
	}
}

func TestSearch_ExplicitZeroLimit(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/search?q=go&limit=0", nil)
	rec := httptest.NewRecorder()
	Search(d)(rec, req)

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	// limit=0 is a valid request for an empty page, not "no limit".
	if body.Total < 2 {
		t.Fatalf("expected at least 2 total matches, got %d", body.Total)
	}
	if len(body.Bookmarks) != 0 {
		t.Errorf("expected empty page for limit=0, got %d bookmarks", len(body.Bookmarks))
	}
	if body.Limit != 0 {
		t.Errorf("expected limit=0 echoed back, got %d", body.Limit)
	}
}

func TestSearch_CategoryEcho(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/search?q=react&category=development", nil)
	rec := httptest.NewRecorder()
	Search(d)(rec, req)

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Total != 1 {
		t.Fatalf("expected 1 match, got %d", body.Total)
	}
	if body.Category != "development" {
		t.Errorf("expected category echoed back, got %q", body.Category)
	}
}

func TestSearchAdvanced(t *testing.T) {
	d := testDeps(testCorpus())

	payload := `{"query":"go","tags":["backend"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks/search", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	SearchAdvanced(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Total != 1 {
		t.Fatalf("expected tag filter to keep 1 match, got %d", body.Total)
	}
	if body.Bookmarks[0].ID != "b2" {
		t.Errorf("expected b2, got %s", body.Bookmarks[0].ID)
	}
}

func TestSearchAdvanced_TopLevelFilters(t *testing.T) {
	d := testDeps(testCorpus())

	// Tag and date-range constraints both exclude every "go" match; a body
	// whose filters were ignored would report 2 hits.
	payload := `{"query":"go","tags":["frontend"],"dateRange":{"start":"2030-01-01T00:00:00Z"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks/search", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	SearchAdvanced(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Total != 0 {
		t.Errorf("expected top-level filters to exclude all matches, got %d", body.Total)
	}
}

func TestSearchAdvanced_InvalidBody(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodPost, "/api/bookmarks/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	SearchAdvanced(d)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckDuplicate(t *testing.T) {
	d := testDeps(testCorpus())

	tests := []struct {
		name          string
		url           string
		wantStatus    int
		wantDuplicate bool
	}{
		{
			name:          "exact duplicate after normalization",
			url:           "https://www.react.dev/learn/?utm_source=x",
			wantStatus:    http.StatusOK,
			wantDuplicate: true,
		},
		{
			name:          "unknown url",
			url:           "https://example.com/fresh",
			wantStatus:    http.StatusOK,
			wantDuplicate: false,
		},
		{
			name:       "missing url",
			url:        "",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/bookmarks/check-duplicate"
			if tt.url != "" {
				target += "?url=" + strings.ReplaceAll(tt.url, "&", "%26")
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			CheckDuplicate(d)(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var verdict domain.DuplicateVerdict
			if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
				t.Fatalf("failed to decode verdict: %v", err)
			}
			if verdict.IsDuplicate != tt.wantDuplicate {
				t.Errorf("IsDuplicate = %v, want %v", verdict.IsDuplicate, tt.wantDuplicate)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	d := testDeps([]*domain.Bookmark{
		{ID: "s1", URL: "https://github.com/golang/go", Title: "Go source"},
		{ID: "s2", URL: "https://github.com/golang/tools", Title: "Go tools"},
		{ID: "s3", URL: "https://news.ycombinator.com/", Title: "HN"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/similar?url=https://github.com/golang/go", nil)
	rec := httptest.NewRecorder()
	Similar(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body similarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Count == 0 {
		t.Fatal("expected at least one similar bookmark")
	}
	if body.Similar[0].ID != "s2" {
		t.Errorf("expected s2 first, got %s", body.Similar[0].ID)
	}
	if body.Similar[0].Score <= 0 {
		t.Errorf("expected positive score, got %f", body.Similar[0].Score)
	}
	for _, s := range body.Similar {
		if s.ID == "s1" {
			t.Error("target bookmark must not appear in its own results")
		}
	}

	// Items carry the trimmed shape: a numeric "score" and none of the full
	// bookmark document fields.
	var raw struct {
		Similar []map[string]any `json:"similar"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode raw body: %v", err)
	}
	item := raw.Similar[0]
	if _, ok := item["score"]; !ok {
		t.Error("expected score field on similar items")
	}
	for _, forbidden := range []string{"similarityScore", "description", "ai_summary", "created_at"} {
		if _, ok := item[forbidden]; ok {
			t.Errorf("unexpected field %q on similar item", forbidden)
		}
	}
}

func TestSimilar_MissingURL(t *testing.T) {
	d := testDeps(testCorpus())

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks/similar", nil)
	rec := httptest.NewRecorder()
	Similar(d)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	t.Run("empty index not ready", func(t *testing.T) {
		d := testDeps(nil)

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		Readyz(d)(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})

	t.Run("loaded index ready", func(t *testing.T) {
		d := testDeps(testCorpus())

		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		Readyz(d)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body readyzResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !body.Ready || body.Bookmarks != 3 {
			t.Errorf("unexpected body: %+v", body)
		}
	})
}

func TestHealthz(t *testing.T) {
	d := testDeps(nil)
	d.Version = "test"

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	Healthz(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body healthzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Status != "ok" || body.Version != "test" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestReload(t *testing.T) {
	d := testDeps(nil)
	d.ReloadTrigger = make(chan struct{}, 1)

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)

	rec := httptest.NewRecorder()
	Reload(d)(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("first reload: expected 202, got %d", rec.Code)
	}

	// Trigger still pending, second request must be rejected.
	rec = httptest.NewRecorder()
	Reload(d)(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second reload: expected 429, got %d", rec.Code)
	}
}
