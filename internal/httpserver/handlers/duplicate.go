package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/marque/internal/domain"
	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/logger"
	redisstore "github.com/MrSnakeDoc/marque/internal/store/redis"
)

// CheckDuplicate handles GET /api/bookmarks/check-duplicate?url=...
// Verdicts are cached in Redis keyed by normalized URL; the cache is
// best effort and a miss or Redis failure falls through to a fresh check.
func CheckDuplicate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "URL parameter is required")
			return
		}

		normalized := domain.NormalizeURL(rawURL)

		if d.Store != nil {
			if cached, err := d.Store.GetCachedDuplicateVerdict(ctx, normalized); err == nil && cached != nil {
				d.Logger.Debug("duplicate verdict cache hit",
					logger.String("url", normalized))
				writeJSON(w, http.StatusOK, cached)
				return
			}
		}

		verdict := d.Detector.Check(rawURL, d.MemoryIndex.All())

		d.Logger.Info("duplicate check",
			logger.String("url", rawURL),
			logger.String("match_type", string(verdict.MatchType)),
			logger.Float64("similarity", verdict.Similarity))

		if d.Store != nil {
			if err := d.Store.CacheDuplicateVerdict(ctx, normalized, &verdict, redisstore.DefaultDuplicateTTL); err != nil {
				d.Logger.Debug("failed to cache duplicate verdict",
					logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, verdict)
	}
}
