package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Backend   string `json:"backend,omitempty"`
	Bookmarks *int   `json:"bookmarks,omitempty"`
	Archived  *int   `json:"archived,omitempty"`
	LastSync  string `json:"last_sync,omitempty"`
	Added     *int   `json:"added,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Components map[string]componentStatus `json:"components"`
}

// Infra reports per-component status: the persistence backend, the last
// sync outcome, and (when active) the Redis connection.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"sync":  checkSync(d),
		}
		if d.RedisClient != nil {
			components["redis"] = checkRedis(d)
		}

		respondJSON(w, d.Logger, http.StatusOK, infraResponse{
			Components: components,
		})
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	status := componentStatus{Backend: d.StoreBackend}

	bookmarks, err := d.Store.LoadBookmarks(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	ids, err := d.Store.LoadArchivedIDs(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	total := len(bookmarks)
	archived := len(ids)
	status.OK = true
	status.Bookmarks = &total
	status.Archived = &archived
	return status
}

func checkSync(d deps.Deps) componentStatus {
	lastSync, result := d.Syncer.LastSync()
	if lastSync.IsZero() {
		return componentStatus{OK: true, LastSync: "never"}
	}
	added := result.Added
	return componentStatus{
		OK:       true,
		LastSync: lastSync.Format("2006-01-02 15:04:05"),
		Added:    &added,
	}
}

func checkRedis(d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}
