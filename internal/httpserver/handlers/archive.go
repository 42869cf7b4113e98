package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

type archiveResponse struct {
	Success bool `json:"success"`
}

// Archive marks one bookmark as archived. A remote removal failure never
// changes the HTTP outcome; only a local persistence failure does.
func Archive(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := d.Archiver.Archive(r.Context(), id); err != nil {
			d.Logger.Error("failed to archive bookmark",
				logger.String("id", id),
				logger.Error(err))
			respondError(w, d.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		respondJSON(w, d.Logger, http.StatusOK, archiveResponse{Success: true})
	}
}

// Archived lists the archive ledger contents.
func Archived(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := d.Store.LoadArchivedIDs(r.Context())
		if err != nil {
			d.Logger.Error("failed to load archived ids",
				logger.Error(err))
			respondError(w, d.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		respondJSON(w, d.Logger, http.StatusOK, ids)
	}
}
