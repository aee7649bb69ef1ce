package organization

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName     = errors.New("member name cannot be empty")
	ErrEmptyCategory = errors.New("member category cannot be empty")
)

// Member is one person on the organizing committee.
type Member struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Category    string `json:"category"` // e.g. "General Chairs", "Program Chairs"
	PhotoURL    string `json:"photo_url,omitempty"`
}

// Validate checks if the Member has valid data.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(m.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// CategoryGroup is the members of one committee category, in backend order.
type CategoryGroup struct {
	Category string
	Members  []Member
}

// GroupByCategory groups members by category, preserving the order in which
// categories first appear.
func GroupByCategory(members []Member) []CategoryGroup {
	index := make(map[string]int)
	var groups []CategoryGroup
	for _, m := range members {
		i, ok := index[m.Category]
		if !ok {
			i = len(groups)
			index[m.Category] = i
			groups = append(groups, CategoryGroup{Category: m.Category})
		}
		groups[i].Members = append(groups[i].Members, m)
	}
	return groups
}

// Categories returns the distinct category names in first-appearance order.
func Categories(members []Member) []string {
	groups := GroupByCategory(members)
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Category
	}
	return names
}
