package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/MrSnakeDoc/marque/internal/domain"
	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/logger"
)

// scoredBookmark flattens a bookmark with its relevance score for the
// response payload.
type scoredBookmark struct {
	*domain.Bookmark
	SearchScore   float64  `json:"searchScore"`
	MatchedFields []string `json:"matchedFields,omitempty"`
}

type searchResponse struct {
	Bookmarks []scoredBookmark `json:"bookmarks"`
	Total     int              `json:"total"`
	Query     string           `json:"query"`
	Category  string           `json:"category"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}

// searchRequest is the POST body for the advanced search variant.
// Filters sit at the top level next to the query.
type searchRequest struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	DateRange  struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"dateRange"`
	SortBy string `json:"sortBy"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// Search handles GET /api/bookmarks/search with query-string filters.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		query := strings.TrimSpace(q.Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}

		filters := domain.SearchFilters{
			Category: strings.TrimSpace(q.Get("category")),
			SortBy:   domain.SortMode(q.Get("sortBy")),
		}
		if tags := q.Get("tags"); tags != "" {
			filters.Tags = splitCSV(tags)
		}

		limit := intParam(q.Get("limit"), d.SearchLimit)
		offset := intParam(q.Get("offset"), 0)

		runSearch(w, d, query, filters, limit, offset)
	}
}

// SearchAdvanced handles POST /api/bookmarks/search with a JSON filter body.
func SearchAdvanced(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			writeError(w, http.StatusBadRequest, "Search query is required")
			return
		}

		filters := domain.SearchFilters{
			Categories: req.Categories,
			Tags:       req.Tags,
			SortBy:     domain.SortMode(req.SortBy),
		}
		if t, err := time.Parse(time.RFC3339, req.DateRange.Start); err == nil {
			filters.CreatedFrom = t
		}
		if t, err := time.Parse(time.RFC3339, req.DateRange.End); err == nil {
			filters.CreatedTo = t
		}

		limit := req.Limit
		if limit <= 0 {
			limit = d.SearchLimit
		}
		offset := req.Offset
		if offset < 0 {
			offset = 0
		}

		runSearch(w, d, query, filters, limit, offset)
	}
}

func runSearch(w http.ResponseWriter, d deps.Deps, query string, filters domain.SearchFilters, limit, offset int) {
	corpus := d.MemoryIndex.All()
	results := domain.Search(query, corpus, filters)
	total := len(results)

	d.Logger.Info("search request",
		logger.String("query", query),
		logger.Int("matches", total))

	page := paginate(results, limit, offset)
	bookmarks := make([]scoredBookmark, 0, len(page))
	for _, res := range page {
		bookmarks = append(bookmarks, scoredBookmark{
			Bookmark:      res.Bookmark,
			SearchScore:   res.Score,
			MatchedFields: res.MatchedFields,
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Bookmarks: bookmarks,
		Total:     total,
		Query:     query,
		Category:  filters.Category,
		Limit:     limit,
		Offset:    offset,
	})
}

// paginate slices results by offset/limit. An explicit limit of 0 yields an
// empty page, not the full set.
func paginate(results []domain.SearchResult, limit, offset int) []domain.SearchResult {
	if offset >= len(results) {
		return nil
	}
	results = results[offset:]
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitCSV(s string) []string {
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
