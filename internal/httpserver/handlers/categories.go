package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

var errBookmarkNotFound = errors.New("bookmark not found")

type categoriesRequest struct {
	Categories []string `json:"categories"`
}

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

// UpdateCategories replaces the category labels of one bookmark.
// Because the sync merge is first-write-wins, labels set here survive
// later syncs.
func UpdateCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req categoriesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, d.Logger, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Categories == nil {
			req.Categories = []string{}
		}

		err := d.Store.UpdateBookmarks(r.Context(), func(current []*domain.Bookmark) ([]*domain.Bookmark, error) {
			for _, b := range current {
				if b.ID == id {
					b.Categories = req.Categories
					return current, nil
				}
			}
			return nil, errBookmarkNotFound
		})
		if err != nil {
			if errors.Is(err, errBookmarkNotFound) {
				respondError(w, d.Logger, http.StatusNotFound, err.Error())
				return
			}
			d.Logger.Error("failed to update categories",
				logger.String("id", id),
				logger.Error(err))
			respondError(w, d.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		respondJSON(w, d.Logger, http.StatusOK, categoriesResponse{
			Success:    true,
			Categories: req.Categories,
		})
	}
}
