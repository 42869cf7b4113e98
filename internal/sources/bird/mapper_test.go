package bird

import (
	"testing"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/sources/rules"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestMapperFullRecord(t *testing.T) {
	mapper := NewMapperWithClock(nil, fixedClock)

	tweet := RawTweet{
		ID:   "1234",
		Text: "hello world",
		Author: &RawAuthor{
			Name:     "Ada Lovelace",
			Username: "ada",
			Avatar:   "https://pbs.example/ada.jpg",
		},
		Media: []RawMedia{
			{Type: "photo", URL: "https://pbs.example/p.jpg", PreviewURL: "https://pbs.example/p_small.jpg"},
		},
		CreatedAt: "2024-12-25T08:30:00Z",
	}

	b := mapper.Map(tweet)

	if b.ID != "1234" {
		t.Errorf("ID = %v, want 1234", b.ID)
	}
	if b.URL != "https://x.com/i/status/1234" {
		t.Errorf("URL = %v, want https://x.com/i/status/1234", b.URL)
	}
	if b.Content != "hello world" {
		t.Errorf("Content = %v, want hello world", b.Content)
	}
	if b.AuthorName != "Ada Lovelace" || b.AuthorHandle != "ada" {
		t.Errorf("author = %v/%v, want Ada Lovelace/ada", b.AuthorName, b.AuthorHandle)
	}
	if b.AuthorAvatar != "https://pbs.example/ada.jpg" {
		t.Errorf("AuthorAvatar = %v", b.AuthorAvatar)
	}
	if len(b.MediaURLs) != 1 || b.MediaURLs[0].PreviewURL != "https://pbs.example/p_small.jpg" {
		t.Errorf("MediaURLs = %v", b.MediaURLs)
	}
	if b.BookmarkedAt != "2024-12-25T08:30:00Z" {
		t.Errorf("BookmarkedAt = %v, want source createdAt", b.BookmarkedAt)
	}
	if b.SyncedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("SyncedAt = %v, want clock time", b.SyncedAt)
	}
}

func TestMapperPlaceholders(t *testing.T) {
	mapper := NewMapperWithClock(nil, fixedClock)

	tests := []struct {
		name  string
		tweet RawTweet
	}{
		{name: "id only", tweet: RawTweet{ID: "1"}},
		{name: "empty author fields", tweet: RawTweet{ID: "1", Author: &RawAuthor{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mapper.Map(tt.tweet)

			if b.AuthorName != "Unknown" {
				t.Errorf("AuthorName = %v, want Unknown", b.AuthorName)
			}
			if b.AuthorHandle != "unknown" {
				t.Errorf("AuthorHandle = %v, want unknown", b.AuthorHandle)
			}
			if b.Content != "" {
				t.Errorf("Content = %v, want empty", b.Content)
			}
			if b.MediaURLs == nil || len(b.MediaURLs) != 0 {
				t.Errorf("MediaURLs = %v, want empty non-nil slice", b.MediaURLs)
			}
			if b.Categories == nil || len(b.Categories) != 0 {
				t.Errorf("Categories = %v, want empty non-nil slice", b.Categories)
			}
			if b.BookmarkedAt != "2025-06-01T12:00:00Z" {
				t.Errorf("BookmarkedAt = %v, want clock fallback", b.BookmarkedAt)
			}
			if b.SyncedAt != "2025-06-01T12:00:00Z" {
				t.Errorf("SyncedAt = %v, want clock time", b.SyncedAt)
			}
		})
	}
}

func TestMapperAppliesClassifier(t *testing.T) {
	classifier := rules.NewClassifier([]rules.Rule{
		{Category: "Development", Keywords: []string{"golang"}},
	})
	mapper := NewMapperWithClock(classifier, fixedClock)

	b := mapper.Map(RawTweet{ID: "1", Text: "learning Golang generics"})
	if len(b.Categories) != 1 || b.Categories[0] != "Development" {
		t.Errorf("Categories = %v, want [Development]", b.Categories)
	}

	b = mapper.Map(RawTweet{ID: "2", Text: "nothing relevant"})
	if b.Categories == nil || len(b.Categories) != 0 {
		t.Errorf("Categories = %v, want empty non-nil slice", b.Categories)
	}
}

func TestStatusURL(t *testing.T) {
	if got := StatusURL("42"); got != "https://x.com/i/status/42" {
		t.Errorf("StatusURL() = %v", got)
	}
}
