package bird

import "testing"

func TestDecodeRawRecordsBareArray(t *testing.T) {
	data := []byte(`[{"id":"1","text":"a"},{"id":"2","text":"b"}]`)

	tweets, err := DecodeRawRecords(data)
	if err != nil {
		t.Fatalf("DecodeRawRecords() error = %v", err)
	}
	if len(tweets) != 2 {
		t.Fatalf("DecodeRawRecords() returned %v tweets, want 2", len(tweets))
	}
	if tweets[0].ID != "1" || tweets[1].Text != "b" {
		t.Errorf("unexpected records: %+v", tweets)
	}
}

func TestDecodeRawRecordsTweetsEnvelope(t *testing.T) {
	data := []byte(`{"tweets":[{"id":"9","text":"hi"}]}`)

	tweets, err := DecodeRawRecords(data)
	if err != nil {
		t.Fatalf("DecodeRawRecords() error = %v", err)
	}
	if len(tweets) != 1 || tweets[0].ID != "9" {
		t.Errorf("DecodeRawRecords() = %+v, want one record with id 9", tweets)
	}
}

func TestDecodeRawRecordsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `not json at all`},
		{name: "scalar", data: `42`},
		{name: "object without tweets", data: `{"items":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRawRecords([]byte(tt.data)); err == nil {
				t.Error("DecodeRawRecords() should fail on unrecognizable input")
			}
		})
	}
}

func TestDecodeBookmarksMixedShapes(t *testing.T) {
	mapper := NewMapperWithClock(nil, fixedClock)
	data := []byte(`[
		{"id":"1","url":"https://x.com/i/status/1","content":"canonical","author_name":"A","author_handle":"a","media_urls":[],"categories":["Kept"],"bookmarked_at":"2024-01-01T00:00:00Z","synced_at":"2024-01-02T00:00:00Z"},
		{"id":"2","text":"still raw"}
	]`)

	bookmarks, err := DecodeBookmarks(data, mapper)
	if err != nil {
		t.Fatalf("DecodeBookmarks() error = %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("DecodeBookmarks() returned %v bookmarks, want 2", len(bookmarks))
	}

	// Canonical entry passed through verbatim.
	if bookmarks[0].Content != "canonical" || bookmarks[0].SyncedAt != "2024-01-02T00:00:00Z" {
		t.Errorf("canonical entry mutated: %+v", bookmarks[0])
	}
	if len(bookmarks[0].Categories) != 1 || bookmarks[0].Categories[0] != "Kept" {
		t.Errorf("canonical categories = %v, want [Kept]", bookmarks[0].Categories)
	}

	// Raw entry normalized.
	if bookmarks[1].Content != "still raw" || bookmarks[1].AuthorName != "Unknown" {
		t.Errorf("raw entry not normalized: %+v", bookmarks[1])
	}
}

func TestDecodeBookmarksTweetsEnvelope(t *testing.T) {
	mapper := NewMapperWithClock(nil, fixedClock)
	data := []byte(`{"tweets":[{"id":"9","text":"hi"}]}`)

	bookmarks, err := DecodeBookmarks(data, mapper)
	if err != nil {
		t.Fatalf("DecodeBookmarks() error = %v", err)
	}
	if len(bookmarks) != 1 {
		t.Fatalf("DecodeBookmarks() returned %v bookmarks, want 1", len(bookmarks))
	}
	if bookmarks[0].Content != "hi" {
		t.Errorf("Content = %v, want hi", bookmarks[0].Content)
	}
}

func TestDecodeBookmarksFillsNilSlices(t *testing.T) {
	mapper := NewMapperWithClock(nil, fixedClock)
	// Canonical entry persisted without media_urls/categories keys.
	data := []byte(`[{"id":"1","content":"x"}]`)

	bookmarks, err := DecodeBookmarks(data, mapper)
	if err != nil {
		t.Fatalf("DecodeBookmarks() error = %v", err)
	}
	if bookmarks[0].MediaURLs == nil {
		t.Error("MediaURLs should never be nil after decode")
	}
	if bookmarks[0].Categories == nil {
		t.Error("Categories should never be nil after decode")
	}
}
