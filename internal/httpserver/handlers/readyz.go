package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, d.Logger, http.StatusOK, readyzResponse{
			Ready: true,
		})
	}
}
