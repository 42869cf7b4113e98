package bird

import (
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
)

// splitItems returns the individual items of a collection document,
// accepting either a bare JSON array or an object wrapping a "tweets"
// array.
func splitItems(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("collection is neither an array nor a tweets object: %w", err)
	}
	if env.Tweets == nil {
		return nil, fmt.Errorf("collection object has no tweets array")
	}
	return env.Tweets, nil
}

// DecodeRawRecords parses bird CLI output into raw tweets.
// Items that fail to decode individually are dropped rather than failing
// the batch; a document that is not a recognizable collection is an error.
func DecodeRawRecords(data []byte) ([]RawTweet, error) {
	items, err := splitItems(data)
	if err != nil {
		return nil, err
	}

	tweets := make([]RawTweet, 0, len(items))
	for _, item := range items {
		var t RawTweet
		if err := json.Unmarshal(item, &t); err != nil {
			continue
		}
		tweets = append(tweets, t)
	}
	return tweets, nil
}

// DecodeBookmarks parses a persisted collection in which each item may
// already be canonical (detected by a "content" field) or still raw.
// Canonical items pass through verbatim; raw items are normalized by the
// mapper. Undecodable items are skipped so one bad record never loses
// the rest of the file.
func DecodeBookmarks(data []byte, m *Mapper) ([]*domain.Bookmark, error) {
	items, err := splitItems(data)
	if err != nil {
		return nil, err
	}

	bookmarks := make([]*domain.Bookmark, 0, len(items))
	for _, item := range items {
		var probe canonicalProbe
		if err := json.Unmarshal(item, &probe); err != nil {
			continue
		}

		if probe.Content != nil {
			var b domain.Bookmark
			if err := json.Unmarshal(item, &b); err != nil {
				continue
			}
			if b.MediaURLs == nil {
				b.MediaURLs = []domain.Media{}
			}
			if b.Categories == nil {
				b.Categories = []string{}
			}
			bookmarks = append(bookmarks, &b)
			continue
		}

		var t RawTweet
		if err := json.Unmarshal(item, &t); err != nil {
			continue
		}
		bookmarks = append(bookmarks, m.Map(t))
	}
	return bookmarks, nil
}
