package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/logger"
	"github.com/MrSnakeDoc/xmarks/internal/sources/bird"
	"github.com/MrSnakeDoc/xmarks/internal/storage"
	"github.com/MrSnakeDoc/xmarks/internal/syncer"
)

type countingClient struct {
	mu    sync.Mutex
	calls int
}

func (c *countingClient) FetchAll(ctx context.Context) ([]bird.RawTweet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil, nil
}

func (c *countingClient) Unbookmark(ctx context.Context, id string) error { return nil }

func (c *countingClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type nopStore struct{}

func (nopStore) LoadBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	return []*domain.Bookmark{}, nil
}

func (nopStore) UpdateBookmarks(ctx context.Context, fn storage.BookmarksUpdateFunc) error {
	_, err := fn([]*domain.Bookmark{})
	return err
}

func (nopStore) LoadArchivedIDs(ctx context.Context) ([]string, error) {
	return []string{}, nil
}

func (nopStore) UpdateArchivedIDs(ctx context.Context, fn storage.IDsUpdateFunc) error {
	_, _, err := fn([]string{})
	return err
}

func TestAutoSyncer_RunsImmediatelyThenStops(t *testing.T) {
	log := logger.New("error", false)
	client := &countingClient{}
	s := syncer.New(client, nopStore{}, bird.NewMapper(nil), log)

	auto := NewAutoSyncer(s, log, time.Hour)
	auto.Start(context.Background())

	// The first pass runs right away, well before the hour tick.
	deadline := time.Now().Add(2 * time.Second)
	for client.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := client.count(); got != 1 {
		t.Fatalf("sync calls = %v, want 1 immediate pass", got)
	}

	auto.Stop()
	time.Sleep(50 * time.Millisecond)
	if got := client.count(); got != 1 {
		t.Errorf("sync calls after Stop = %v, want still 1", got)
	}
}

func TestAutoSyncer_StopsOnContextCancel(t *testing.T) {
	log := logger.New("error", false)
	client := &countingClient{}
	s := syncer.New(client, nopStore{}, bird.NewMapper(nil), log)

	ctx, cancel := context.WithCancel(context.Background())
	auto := NewAutoSyncer(s, log, 10*time.Millisecond)
	auto.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for client.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if client.count() < 2 {
		t.Fatal("expected at least one ticker pass after the immediate one")
	}

	cancel()
	time.Sleep(50 * time.Millisecond)
	after := client.count()
	time.Sleep(50 * time.Millisecond)
	if got := client.count(); got != after {
		t.Errorf("sync calls kept growing after cancel: %v -> %v", after, got)
	}
}
