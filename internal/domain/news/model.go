package news

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyTitle          = errors.New("news title cannot be empty")
	ErrLinkTextNotInBody   = errors.New("link text must appear verbatim in the content")
	ErrLinkTextWithoutURL  = errors.New("link text requires a link url")
)

// Item is a single news entry attached to a page.
type Item struct {
	ID          int64  `json:"id"`
	PageID      int64  `json:"page_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at,omitempty"` // ISO date
	LinkText    string `json:"link_text,omitempty"`
	LinkURL     string `json:"link_url,omitempty"`
}

// Validate checks if the Item has valid data.
// PRE: Item struct is populated
// POST: Returns nil if valid, error otherwise
func (n *Item) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyTitle
	}
	if n.LinkText != "" {
		if n.LinkURL == "" {
			return ErrLinkTextWithoutURL
		}
		if !strings.Contains(n.Content, n.LinkText) {
			return ErrLinkTextNotInBody
		}
	}
	return nil
}

// Segment is a rendered slice of the news content: plain text or the
// hyperlinked link_text.
type Segment struct {
	Text   string
	IsLink bool
	URL    string
}

// ContentSegments splits the content on link_text and replaces each
// occurrence with a link segment. Without a usable link the whole content is
// one plain segment. No text is lost or duplicated.
func (n *Item) ContentSegments() []Segment {
	if n.LinkText == "" || n.LinkURL == "" || !strings.Contains(n.Content, n.LinkText) {
		return []Segment{{Text: n.Content}}
	}
	parts := strings.Split(n.Content, n.LinkText)
	segments := make([]Segment, 0, 2*len(parts)-1)
	for i, part := range parts {
		if i > 0 {
			segments = append(segments, Segment{Text: n.LinkText, IsLink: true, URL: n.LinkURL})
		}
		if part != "" {
			segments = append(segments, Segment{Text: part})
		}
	}
	return segments
}

// DisplayDate formats the published date for display, passing through
// unparseable values unchanged.
func (n *Item) DisplayDate() string {
	if n.PublishedAt == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", n.PublishedAt)
	if err != nil {
		return n.PublishedAt
	}
	return t.Format("2 January 2006")
}

// ForPage filters items to those attached to the given page. The list
// endpoint is unfiltered, so the narrowing happens here.
func ForPage(items []Item, pageID int64) []Item {
	var out []Item
	for _, n := range items {
		if n.PageID == pageID {
			out = append(out, n)
		}
	}
	return out
}
