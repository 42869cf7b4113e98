package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
)

const (
	bookmarksFile = "bookmarks.json"
	archivedFile  = "archived.json"
)

// Store persists the bookmark collection and the archive ledger as two
// independent pretty-printed JSON files under one data directory.
//
// Each resource is guarded by its own mutex so a read-modify-write cycle
// is never interleaved with another writer. Files are replaced via
// temp-file + rename: a reader either sees the previous collection or the
// new one, never a partial write.
type Store struct {
	bookmarksPath string
	archivedPath  string
	mapper        *bird.Mapper
	logger        logger.Logger

	bmMu sync.Mutex
	arMu sync.Mutex
}

// NewStore creates a file store rooted at dataDir. The mapper is used to
// normalize raw-shaped entries found in legacy collection files.
func NewStore(dataDir string, mapper *bird.Mapper, log logger.Logger) *Store {
	return &Store{
		bookmarksPath: filepath.Join(dataDir, bookmarksFile),
		archivedPath:  filepath.Join(dataDir, archivedFile),
		mapper:        mapper,
		logger:        log,
	}
}

// LoadBookmarks reads the collection file. Missing file, unparsable JSON
// and unexpected shapes all degrade to an empty collection.
func (s *Store) LoadBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	s.bmMu.Lock()
	defer s.bmMu.Unlock()
	return s.readBookmarks(), nil
}

// UpdateBookmarks runs fn on the current collection and persists its
// result, holding the bookmark lock for the whole cycle.
func (s *Store) UpdateBookmarks(ctx context.Context, fn storage.BookmarksUpdateFunc) error {
	s.bmMu.Lock()
	defer s.bmMu.Unlock()

	updated, err := fn(s.readBookmarks())
	if err != nil {
		return err
	}
	if updated == nil {
		updated = []*domain.Bookmark{}
	}
	return s.writeJSON(s.bookmarksPath, updated)
}

// LoadArchivedIDs reads the ledger file with the same tolerant-empty
// policy as LoadBookmarks.
func (s *Store) LoadArchivedIDs(ctx context.Context) ([]string, error) {
	s.arMu.Lock()
	defer s.arMu.Unlock()
	return s.readArchivedIDs(), nil
}

// UpdateArchivedIDs runs fn on the current ledger under its lock.
// When fn reports no change, nothing is written.
func (s *Store) UpdateArchivedIDs(ctx context.Context, fn storage.IDsUpdateFunc) error {
	s.arMu.Lock()
	defer s.arMu.Unlock()

	updated, changed, err := fn(s.readArchivedIDs())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if updated == nil {
		updated = []string{}
	}
	return s.writeJSON(s.archivedPath, updated)
}

func (s *Store) readBookmarks() []*domain.Bookmark {
	data, err := os.ReadFile(s.bookmarksPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read bookmarks file, treating as empty",
				logger.String("path", s.bookmarksPath),
				logger.Error(err))
		}
		return []*domain.Bookmark{}
	}

	bookmarks, err := bird.DecodeBookmarks(data, s.mapper)
	if err != nil {
		s.logger.Warn("unparsable bookmarks file, treating as empty",
			logger.String("path", s.bookmarksPath),
			logger.Error(err))
		return []*domain.Bookmark{}
	}
	return bookmarks
}

func (s *Store) readArchivedIDs() []string {
	data, err := os.ReadFile(s.archivedPath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read archived file, treating as empty",
				logger.String("path", s.archivedPath),
				logger.Error(err))
		}
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("unparsable archived file, treating as empty",
			logger.String("path", s.archivedPath),
			logger.Error(err))
		return []string{}
	}
	return ids
}

// writeJSON replaces path with the pretty-printed serialization of v.
// The temp file lives in the target directory so the rename stays on one
// filesystem and therefore atomic.
func (s *Store) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
