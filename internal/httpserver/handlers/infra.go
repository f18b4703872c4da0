package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	BookmarksLoaded *int   `json:"bookmarks_loaded,omitempty"`
	LastReload      string `json:"last_reload,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Impact          string `json:"impact,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarkCount := d.MemoryIndex.Count()
		lastReload := d.MemoryIndex.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		redisStatus := checkRedis(d)

		components := map[string]componentStatus{
			"corpus": {
				OK:              bookmarkCount > 0,
				BookmarksLoaded: &bookmarkCount,
				LastReload:      lastReloadStr,
			},
			"redis": redisStatus,
			"engine": {
				OK:   true,
				Mode: "lexical+heuristic",
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	// No corpus means nothing to score against.
	if corpus, exists := components["corpus"]; exists {
		if !corpus.OK || (corpus.BookmarksLoaded != nil && *corpus.BookmarksLoaded == 0) {
			return "critical"
		}
	}

	// Redis down only loses persistence and the verdict cache.
	if rd, exists := components["redis"]; exists && !rd.OK {
		return "degraded"
	}

	return "optimal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-and-verdict-cache-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-and-verdict-cache-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-and-verdict-cache-enabled",
		Error:  "none",
	}
}
