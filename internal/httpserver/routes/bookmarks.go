package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marque/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marque/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/marque/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	limiter := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitPerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})

	r.With(limiter, mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/bookmarks", func(api chi.Router) {
		api.Get("/search", handlers.Search(d))
		api.Post("/search", handlers.SearchAdvanced(d))
		api.Get("/check-duplicate", handlers.CheckDuplicate(d))
		api.Get("/similar", handlers.Similar(d))
	})
}
