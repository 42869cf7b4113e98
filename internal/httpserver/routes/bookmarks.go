package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
	guarded.Get("/api/bookmarks", handlers.Bookmarks(d))
	guarded.Get("/api/archived", handlers.Archived(d))
	guarded.Put("/api/bookmarks/{id}/categories", handlers.UpdateCategories(d))
	guarded.Post("/api/bookmarks/{id}/archive", handlers.Archive(d))
}
