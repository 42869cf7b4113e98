package redis

const (
	// KeyPrefixBookmark is the prefix for individual bookmark keys.
	KeyPrefixBookmark = "xmarks:bookmark:"
	// KeyAllBookmarks is the set of all stored bookmark IDs.
	KeyAllBookmarks = "xmarks:bookmarks:all"
	// KeyArchived is the set of archived bookmark IDs (the ledger).
	KeyArchived = "xmarks:archived"
)

// BookmarkKey returns the Redis key for a bookmark by ID.
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}
