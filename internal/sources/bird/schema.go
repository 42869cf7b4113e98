package bird

import "encoding/json"

// RawAuthor is the nested author object on a raw tweet. All fields are
// optional; the mapper substitutes placeholders for missing values.
type RawAuthor struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// RawMedia is one media attachment as emitted by the bird CLI.
// The shape matches the canonical media entry so attachments survive
// normalization untouched.
type RawMedia struct {
	Type       string `json:"type"`
	URL        string `json:"url"`
	PreviewURL string `json:"previewUrl,omitempty"`
}

// RawTweet is one bookmark entry as emitted by `bird bookmarks --json`,
// pre-normalization. Only the fields the archive consumes are declared;
// anything else the CLI emits is dropped.
type RawTweet struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    *RawAuthor `json:"author"`
	Media     []RawMedia `json:"media"`
	CreatedAt string     `json:"createdAt"`
}

// envelope tolerates the object-wrapped collection shape {"tweets": [...]}
// that older runs of the CLI (and files seeded from its raw output) produce.
type envelope struct {
	Tweets []json.RawMessage `json:"tweets"`
}

// canonicalProbe detects items that are already normalized Bookmarks.
// Presence of a "content" key is the discriminator: raw tweets carry
// "text" instead.
type canonicalProbe struct {
	Content *string `json:"content"`
}
