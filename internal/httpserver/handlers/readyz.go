package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool `json:"ready"`
	Bookmarks int  `json:"bookmarks"`
}

// Readyz reports ready once the bookmark corpus has been loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		status := http.StatusOK
		if count == 0 {
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, readyzResponse{
			Ready:     count > 0,
			Bookmarks: count,
		})
	}
}
