package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	mapper := bird.NewMapperWithClock(nil, func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return NewStore(dir, mapper, logger.New("error", false)), dir
}

func TestLoadBookmarksMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	bookmarks, err := store.LoadBookmarks(context.Background())
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if bookmarks == nil || len(bookmarks) != 0 {
		t.Errorf("LoadBookmarks() on missing file = %v, want empty slice", bookmarks)
	}
}

func TestLoadBookmarksGarbageFile(t *testing.T) {
	store, dir := newTestStore(t)
	if err := os.WriteFile(filepath.Join(dir, "bookmarks.json"), []byte("{{{"), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	bookmarks, err := store.LoadBookmarks(context.Background())
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if len(bookmarks) != 0 {
		t.Errorf("LoadBookmarks() on garbage = %v entries, want 0", len(bookmarks))
	}
}

func TestLoadBookmarksTweetsEnvelope(t *testing.T) {
	store, dir := newTestStore(t)
	seed := `{"tweets":[{"id":"9","text":"hi"}]}`
	if err := os.WriteFile(filepath.Join(dir, "bookmarks.json"), []byte(seed), 0644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	bookmarks, err := store.LoadBookmarks(context.Background())
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("LoadBookmarks() = %v entries, want 1", len(bookmarks))
	}
	if bookmarks[0].ID != "9" || bookmarks[0].Content != "hi" {
		t.Errorf("normalized entry = %+v, want id 9 content hi", bookmarks[0])
	}
}

func TestUpdateBookmarksRoundTrip(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateBookmarks(ctx, func(current []*domain.Bookmark) ([]*domain.Bookmark, error) {
		if len(current) != 0 {
			t.Errorf("first update saw %v entries, want 0", len(current))
		}
		return []*domain.Bookmark{{
			ID:         "1",
			URL:        "https://x.com/i/status/1",
			Content:    "hello",
			Categories: []string{},
			MediaURLs:  []domain.Media{},
		}}, nil
	})
	if err != nil {
		t.Fatalf("UpdateBookmarks() error = %v", err)
	}

	// Pretty-printed with 2-space indent.
	raw, err := os.ReadFile(filepath.Join(dir, "bookmarks.json"))
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}
	if !strings.Contains(string(raw), "\n  {") {
		t.Errorf("file should be pretty-printed with 2-space indent:\n%s", raw)
	}

	bookmarks, err := store.LoadBookmarks(ctx)
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Content != "hello" {
		t.Errorf("round trip lost data: %+v", bookmarks)
	}
}

func TestUpdateBookmarksSerialized(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Many concurrent appends; with a serialized read-modify-write every
	// one of them must survive.
	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.UpdateBookmarks(ctx, func(current []*domain.Bookmark) ([]*domain.Bookmark, error) {
				return append(current, &domain.Bookmark{ID: string(rune('a' + n))}), nil
			})
		}(i)
	}
	wg.Wait()

	bookmarks, err := store.LoadBookmarks(ctx)
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}
	if len(bookmarks) != writers {
		t.Errorf("concurrent updates kept %v entries, want %v", len(bookmarks), writers)
	}
}

func TestLoadArchivedIDsMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	ids, err := store.LoadArchivedIDs(context.Background())
	if err != nil {
		t.Fatalf("LoadArchivedIDs() error = %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("LoadArchivedIDs() on missing file = %v, want empty slice", ids)
	}
}

func TestUpdateArchivedIDs(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateArchivedIDs(ctx, func(current []string) ([]string, bool, error) {
		return append(current, "42"), true, nil
	})
	if err != nil {
		t.Fatalf("UpdateArchivedIDs() error = %v", err)
	}

	ids, err := store.LoadArchivedIDs(ctx)
	if err != nil {
		t.Fatalf("LoadArchivedIDs() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != "42" {
		t.Errorf("ledger = %v, want [42]", ids)
	}

	// changed=false must not touch the file.
	before, err := os.Stat(filepath.Join(dir, "archived.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	err = store.UpdateArchivedIDs(ctx, func(current []string) ([]string, bool, error) {
		return current, false, nil
	})
	if err != nil {
		t.Fatalf("UpdateArchivedIDs() error = %v", err)
	}
	after, err := os.Stat(filepath.Join(dir, "archived.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) || after.Size() != before.Size() {
		t.Error("unchanged update should not rewrite the ledger file")
	}
}

func TestNoLeftoverTempFiles(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.UpdateBookmarks(ctx, func(current []*domain.Bookmark) ([]*domain.Bookmark, error) {
			return current, nil
		}); err != nil {
			t.Fatalf("UpdateBookmarks() error = %v", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}
