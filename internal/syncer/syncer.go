package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
)

// Result reports the outcome of one sync pass.
type Result struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// Syncer merges remotely fetched bookmarks into the local collection.
//
// The merge is identity-keyed and first-write-wins: a record already in
// the collection is never overwritten, so locally edited categories and
// other fields survive re-sync. Running Sync twice against unchanged
// remote data adds zero records the second time.
type Syncer struct {
	client bird.Client
	store  storage.Store
	mapper *bird.Mapper
	logger logger.Logger

	mu         sync.Mutex
	lastSync   time.Time
	lastResult Result
}

// New creates a syncer.
func New(client bird.Client, store storage.Store, mapper *bird.Mapper, log logger.Logger) *Syncer {
	return &Syncer{
		client: client,
		store:  store,
		mapper: mapper,
		logger: log,
	}
}

// Sync fetches the complete remote collection, merges it into the store
// and persists the result exactly once. The fetch runs outside the store
// lock so a slow CLI never blocks other writers; a failure anywhere
// leaves the prior on-disk state intact.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	tweets, err := s.client.FetchAll(ctx)
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = s.store.UpdateBookmarks(ctx, func(current []*domain.Bookmark) ([]*domain.Bookmark, error) {
		seen := make(map[string]bool, len(current))
		for _, b := range current {
			seen[b.ID] = true
		}

		merged := current
		added := 0
		for _, t := range tweets {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			merged = append(merged, s.mapper.Map(t))
			added++
		}

		res = Result{Added: added, Total: len(merged)}
		return merged, nil
	})
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	s.lastSync = time.Now()
	s.lastResult = res
	s.mu.Unlock()

	s.logger.Info("sync completed",
		logger.Int("fetched", len(tweets)),
		logger.Int("added", res.Added),
		logger.Int("total", res.Total))

	return res, nil
}

// LastSync returns when the last successful sync finished and its result.
// A zero time means no sync has succeeded yet.
func (s *Syncer) LastSync() (time.Time, Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync, s.lastResult
}
