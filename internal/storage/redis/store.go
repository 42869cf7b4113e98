package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
)

// Store is the Redis implementation of storage.Store, usable as a drop-in
// substitute for the default file backend. Bookmarks live one-per-key with
// a membership set; the archive ledger is a plain set.
//
// No TTL is applied anywhere: an archive must never expire its contents.
//
// Update cycles are serialized with in-process mutexes, mirroring the file
// backend's single-writer guarantee.
type Store struct {
	client *goredis.Client
	logger logger.Logger

	bmMu sync.Mutex
	arMu sync.Mutex
}

// NewStore creates a Redis-backed store.
func NewStore(client *goredis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log,
	}
}

// LoadBookmarks retrieves the full collection. Individual values that
// fail to decode are skipped; a connection failure propagates, since an
// unreachable backend is not the same thing as an empty archive.
func (s *Store) LoadBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	s.bmMu.Lock()
	defer s.bmMu.Unlock()
	return s.loadBookmarksLocked(ctx)
}

// UpdateBookmarks applies fn and replaces the stored collection in one
// pipeline, removing entries that fn dropped.
func (s *Store) UpdateBookmarks(ctx context.Context, fn storage.BookmarksUpdateFunc) error {
	s.bmMu.Lock()
	defer s.bmMu.Unlock()

	current, err := s.loadBookmarksLocked(ctx)
	if err != nil {
		return err
	}

	updated, err := fn(current)
	if err != nil {
		return err
	}

	keep := make(map[string]bool, len(updated))
	pipe := s.client.Pipeline()
	for _, b := range updated {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmark %s: %w", b.ID, err)
		}
		keep[b.ID] = true
		pipe.Set(ctx, BookmarkKey(b.ID), data, 0)
		pipe.SAdd(ctx, KeyAllBookmarks, b.ID)
	}
	for _, b := range current {
		if !keep[b.ID] {
			pipe.Del(ctx, BookmarkKey(b.ID))
			pipe.SRem(ctx, KeyAllBookmarks, b.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// LoadArchivedIDs returns the ledger members, sorted for deterministic
// output (Redis sets are unordered).
func (s *Store) LoadArchivedIDs(ctx context.Context) ([]string, error) {
	s.arMu.Lock()
	defer s.arMu.Unlock()
	return s.loadArchivedLocked(ctx)
}

// UpdateArchivedIDs applies fn to the ledger and replaces the set when fn
// reports a change.
func (s *Store) UpdateArchivedIDs(ctx context.Context, fn storage.IDsUpdateFunc) error {
	s.arMu.Lock()
	defer s.arMu.Unlock()

	current, err := s.loadArchivedLocked(ctx)
	if err != nil {
		return err
	}

	updated, changed, err := fn(current)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, KeyArchived)
	if len(updated) > 0 {
		members := make([]interface{}, len(updated))
		for i, id := range updated {
			members[i] = id
		}
		pipe.SAdd(ctx, KeyArchived, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save archived ids: %w", err)
	}
	return nil
}

func (s *Store) loadBookmarksLocked(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, KeyAllBookmarks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark ids: %w", err)
	}
	sort.Strings(ids)

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				// Set member without a value: stale index entry, skip.
				continue
			}
			return nil, fmt.Errorf("failed to get bookmark %s: %w", id, err)
		}

		var b domain.Bookmark
		if err := json.Unmarshal(data, &b); err != nil {
			s.logger.Warn("skipping undecodable bookmark value",
				logger.String("id", id),
				logger.Error(err))
			continue
		}
		if b.MediaURLs == nil {
			b.MediaURLs = []domain.Media{}
		}
		if b.Categories == nil {
			b.Categories = []string{}
		}
		bookmarks = append(bookmarks, &b)
	}
	return bookmarks, nil
}

func (s *Store) loadArchivedLocked(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, KeyArchived).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get archived ids: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
