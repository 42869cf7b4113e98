package bird

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/domain"
	"github.com/MrSnakeDoc/xmarks/internal/sources/rules"
)

// originDomain is the host used to synthesize canonical status URLs.
const originDomain = "x.com"

// Mapper converts raw bird tweets to canonical domain.Bookmark entities.
//
// Mapping is total: malformed input degrades to placeholder values instead
// of failing, so one bad record never aborts a sync batch.
type Mapper struct {
	classifier *rules.Classifier
	now        func() time.Time
}

// NewMapper creates a mapper. classifier may be nil (no auto-labelling).
func NewMapper(classifier *rules.Classifier) *Mapper {
	return &Mapper{
		classifier: classifier,
		now:        time.Now,
	}
}

// NewMapperWithClock creates a mapper with an injected clock for tests.
func NewMapperWithClock(classifier *rules.Classifier, now func() time.Time) *Mapper {
	return &Mapper{
		classifier: classifier,
		now:        now,
	}
}

// Map normalizes one raw tweet.
//
// Placeholders: missing author name -> "Unknown", missing handle ->
// "unknown", missing createdAt -> current wall-clock time. SyncedAt is
// stamped here, exactly once per record lifetime.
func (m *Mapper) Map(t RawTweet) *domain.Bookmark {
	now := m.now().UTC().Format(time.RFC3339)

	authorName := "Unknown"
	authorHandle := "unknown"
	authorAvatar := ""
	if t.Author != nil {
		if t.Author.Name != "" {
			authorName = t.Author.Name
		}
		if t.Author.Username != "" {
			authorHandle = t.Author.Username
		}
		authorAvatar = t.Author.Avatar
	}

	bookmarkedAt := t.CreatedAt
	if bookmarkedAt == "" {
		bookmarkedAt = now
	}

	media := make([]domain.Media, 0, len(t.Media))
	for _, att := range t.Media {
		media = append(media, domain.Media{
			Type:       att.Type,
			URL:        att.URL,
			PreviewURL: att.PreviewURL,
		})
	}

	categories := m.classifier.Categorize(t.Text)
	if categories == nil {
		categories = []string{}
	}

	return &domain.Bookmark{
		ID:           t.ID,
		URL:          StatusURL(t.ID),
		Content:      t.Text,
		AuthorName:   authorName,
		AuthorHandle: authorHandle,
		AuthorAvatar: authorAvatar,
		MediaURLs:    media,
		Categories:   categories,
		BookmarkedAt: bookmarkedAt,
		SyncedAt:     now,
	}
}

// StatusURL synthesizes the canonical origin URL for a status ID.
func StatusURL(id string) string {
	return fmt.Sprintf("https://%s/i/status/%s", originDomain, id)
}
