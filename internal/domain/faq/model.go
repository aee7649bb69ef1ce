package faq

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors
var (
	ErrEmptyQuestion = errors.New("faq question cannot be empty")
	ErrEmptyAnswer   = errors.New("faq answer cannot be empty")
)

// Item is a question/answer pair on the registration page. Answers support
// Markdown formatting.
type Item struct {
	ID       int64  `json:"id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}

// Validate checks if the Item has valid data.
func (f *Item) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrEmptyQuestion
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

// SortByOrder orders items ascending by their order field. Display and
// persisted lists both keep this ordering.
func SortByOrder(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
}

// NextOrder returns the default order for a new item: one past the last
// item of the (sorted) list, or 1 for an empty list.
func NextOrder(items []Item) int {
	if len(items) == 0 {
		return 1
	}
	return items[len(items)-1].Order + 1
}
