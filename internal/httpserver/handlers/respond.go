package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func respondError(w http.ResponseWriter, log logger.Logger, status int, msg string) {
	respondJSON(w, log, status, errorResponse{Error: msg})
}
