package news_test

import (
	"testing"

	"mmmweb/internal/domain/news"
)

// TestItem_Validate tests validation of news items.
func TestItem_Validate(t *testing.T) {
	tests := []struct {
		name    string
		item    news.Item
		wantErr bool
	}{
		{
			name:    "valid plain item",
			item:    news.Item{ID: 1, PageID: 1, Title: "Registration open", Content: "Register now."},
			wantErr: false,
		},
		{
			name: "valid item with link",
			item: news.Item{
				ID: 2, PageID: 1, Title: "CFP", Content: "Visit our submissions page",
				LinkText: "submissions", LinkURL: "/calls",
			},
			wantErr: false,
		},
		{
			name:    "empty title",
			item:    news.Item{ID: 3, PageID: 1, Content: "body"},
			wantErr: true,
		},
		{
			name: "link text missing from content",
			item: news.Item{
				ID: 4, PageID: 1, Title: "t", Content: "no anchor here",
				LinkText: "submissions", LinkURL: "/calls",
			},
			wantErr: true,
		},
		{
			name: "link text without url",
			item: news.Item{
				ID: 5, PageID: 1, Title: "t", Content: "see submissions",
				LinkText: "submissions",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestItem_ContentSegments tests the link_text substitution rule.
func TestItem_ContentSegments(t *testing.T) {
	t.Run("link in the middle", func(t *testing.T) {
		n := news.Item{
			Content:  "Visit our registration page",
			LinkText: "registration",
			LinkURL:  "/register",
		}
		got := n.ContentSegments()
		want := []news.Segment{
			{Text: "Visit our "},
			{Text: "registration", IsLink: true, URL: "/register"},
			{Text: " page"},
		}
		if len(got) != len(want) {
			t.Fatalf("got %d segments, want %d: %+v", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("no link fields yields one plain segment", func(t *testing.T) {
		n := news.Item{Content: "Just text."}
		got := n.ContentSegments()
		if len(got) != 1 || got[0].IsLink || got[0].Text != "Just text." {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("no text loss or duplication", func(t *testing.T) {
		n := news.Item{
			Content:  "a link b link c",
			LinkText: "link",
			LinkURL:  "/l",
		}
		var rebuilt string
		for _, seg := range n.ContentSegments() {
			rebuilt += seg.Text
		}
		if rebuilt != n.Content {
			t.Errorf("rebuilt %q != content %q", rebuilt, n.Content)
		}
	})

	t.Run("link text at content start", func(t *testing.T) {
		n := news.Item{Content: "Deadline extended!", LinkText: "Deadline", LinkURL: "/dates"}
		got := n.ContentSegments()
		if !got[0].IsLink || got[0].Text != "Deadline" {
			t.Errorf("first segment = %+v, want link", got[0])
		}
	})
}

// TestForPage tests client-side page filtering of the unfiltered list.
func TestForPage(t *testing.T) {
	items := []news.Item{
		{ID: 1, PageID: 1, Title: "a"},
		{ID: 2, PageID: 2, Title: "b"},
		{ID: 3, PageID: 1, Title: "c"},
	}
	got := news.ForPage(items, 1)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("ForPage() = %+v", got)
	}
	if got := news.ForPage(items, 9); got != nil {
		t.Errorf("expected nil for unknown page, got %+v", got)
	}
}
