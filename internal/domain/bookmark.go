package domain

import (
	"sort"
	"time"
)

// Media is a single attachment on a bookmarked post.
type Media struct {
	// Type is the attachment kind as reported by the source.
	// Example: photo, video, animated_gif
	Type string `json:"type"`

	// URL is the full-resolution media URL.
	URL string `json:"url"`

	// PreviewURL is an optional lower-resolution preview.
	PreviewURL string `json:"previewUrl,omitempty"`
}

// Bookmark is the canonical, normalized representation of one saved post.
//
// It is NOT tied to the bird CLI output or any storage backend.
// All inputs (fetched raw tweets, legacy files, manual edits) are merged
// into this structure.
//
// A Bookmark is uniquely identified by its ID across the whole collection.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the source-assigned status identifier.
	// It is the merge key: an ID never appears twice in a stored collection.
	ID string `json:"id"`

	// URL is the canonical origin URL, synthesized from the ID.
	// Example: https://x.com/i/status/1234567890
	URL string `json:"url"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Content is the post text. May be empty.
	Content string `json:"content"`

	// AuthorName is the author display name. "Unknown" when the source
	// did not provide one.
	AuthorName string `json:"author_name"`

	// AuthorHandle is the author username. "unknown" when missing.
	AuthorHandle string `json:"author_handle"`

	// AuthorAvatar is an optional avatar URL.
	AuthorAvatar string `json:"author_avatar,omitempty"`

	// MediaURLs lists attachments in source order. Never nil.
	MediaURLs []Media `json:"media_urls"`

	// Categories holds user-facing labels. Order carries no meaning.
	// Never nil; empty on creation unless a classifier assigned labels.
	Categories []string `json:"categories"`

	// ─────────────────────────────
	// Timestamps (ISO 8601 strings, matching the on-disk format)
	// ─────────────────────────────

	// BookmarkedAt is the origin-assigned creation time of the post.
	BookmarkedAt string `json:"bookmarked_at"`

	// SyncedAt is stamped exactly once, when the record is first
	// normalized, and never refreshed on later syncs (first-seen
	// semantics).
	SyncedAt string `json:"synced_at"`
}

// SortByBookmarkedAt orders bookmarks most recent first.
// Entries with unparsable timestamps sort last; ties fall back to ID so
// the order is deterministic.
func SortByBookmarkedAt(bookmarks []*Bookmark) {
	sort.SliceStable(bookmarks, func(i, j int) bool {
		ti, oki := parseWhen(bookmarks[i].BookmarkedAt)
		tj, okj := parseWhen(bookmarks[j].BookmarkedAt)
		switch {
		case oki && okj && !ti.Equal(tj):
			return ti.After(tj)
		case oki != okj:
			return oki
		default:
			return bookmarks[i].ID > bookmarks[j].ID
		}
	})
}

func parseWhen(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
