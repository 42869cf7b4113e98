package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

type syncResponse struct {
	Success bool `json:"success"`
	Added   int  `json:"added"`
	Total   int  `json:"total"`
}

// Sync runs a full fetch-and-merge pass and reports how many records it
// added. A fetch or persistence failure turns into a 500; the prior
// on-disk state stays intact either way.
func Sync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Syncer.Sync(r.Context())
		if err != nil {
			d.Logger.Error("sync failed",
				logger.Error(err))
			respondError(w, d.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		respondJSON(w, d.Logger, http.StatusOK, syncResponse{
			Success: true,
			Added:   res.Added,
			Total:   res.Total,
		})
	}
}
