package storage

import (
	"context"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
)

// BookmarksUpdateFunc transforms the current collection into the one to
// persist. It runs under the backend's bookmark lock.
type BookmarksUpdateFunc func(current []*domain.Bookmark) ([]*domain.Bookmark, error)

// IDsUpdateFunc transforms the current archived-id list into the one to
// persist. Returning changed=false skips the write entirely.
type IDsUpdateFunc func(current []string) (updated []string, changed bool, err error)

// Store is the persistence boundary for the bookmark collection and the
// archive ledger. The two resources are independent and never coupled in
// one transaction: archival is reversible metadata, not deletion.
//
// Read methods are tolerant: a missing or unparsable backing resource
// yields an empty result, never an error (first-run tolerance). Write
// failures always propagate.
//
// Update methods serialize the whole read-modify-write cycle per
// resource, so two overlapping writers can never silently discard each
// other's changes.
type Store interface {
	// LoadBookmarks returns the full canonical collection.
	LoadBookmarks(ctx context.Context) ([]*domain.Bookmark, error)

	// UpdateBookmarks applies fn to the current collection and persists
	// the result exactly once, atomically from a reader's perspective.
	UpdateBookmarks(ctx context.Context, fn BookmarksUpdateFunc) error

	// LoadArchivedIDs returns the archive ledger contents.
	LoadArchivedIDs(ctx context.Context) ([]string, error)

	// UpdateArchivedIDs applies fn to the ledger under its lock.
	UpdateArchivedIDs(ctx context.Context, fn IDsUpdateFunc) error
}
