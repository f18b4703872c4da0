package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/logger"
)

// similarBookmark is the trimmed per-item payload: consumers render a
// suggestion list, they do not need the full bookmark document.
type similarBookmark struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons,omitempty"`
}

type similarResponse struct {
	Similar []similarBookmark `json:"similar"`
	Count   int               `json:"count"`
}

// Similar handles GET /api/bookmarks/similar?url=...&limit=N
func Similar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "URL parameter is required")
			return
		}

		limit := intParam(r.URL.Query().Get("limit"), d.SimilarLimit)

		results := d.Scorer.FindSimilar(rawURL, d.MemoryIndex.All(), limit)

		d.Logger.Info("similarity lookup",
			logger.String("url", rawURL),
			logger.Int("matches", len(results)))

		similar := make([]similarBookmark, 0, len(results))
		for _, res := range results {
			similar = append(similar, similarBookmark{
				ID:       res.Bookmark.ID,
				Title:    res.Bookmark.Title,
				URL:      res.Bookmark.URL,
				Category: res.Bookmark.Category,
				Tags:     res.Bookmark.Tags,
				Score:    res.Score,
				Reasons:  res.Reasons,
			})
		}

		writeJSON(w, http.StatusOK, similarResponse{
			Similar: similar,
			Count:   len(similar),
		})
	}
}
