package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

// Bookmarks returns the full collection, most recently bookmarked first.
// Archived entries are NOT filtered out here: archival is metadata and
// hiding ledger members is the client's concern.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Store.LoadBookmarks(r.Context())
		if err != nil {
			d.Logger.Error("failed to load bookmarks",
				logger.Error(err))
			respondError(w, d.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		domain.SortByBookmarkedAt(bookmarks)
		respondJSON(w, d.Logger, http.StatusOK, bookmarks)
	}
}
