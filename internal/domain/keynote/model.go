package keynote

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName        = errors.New("keynote speaker name cannot be empty")
	ErrEmptyAffiliation = errors.New("keynote affiliation cannot be empty")
)

// Keynote is an invited talk shown on the conference page.
type Keynote struct {
	ID          int64  `json:"id"`
	PageID      int64  `json:"page_id"`
	Name        string `json:"name"`
	PhotoURL    string `json:"photo_url,omitempty"` // may be a data URL until hosted storage exists
	Affiliation string `json:"affiliation"`
	Title       string `json:"title"`
	Bio         string `json:"bio"`
	Content     string `json:"content"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
}

// Validate checks if the Keynote has valid data.
// POST: Returns nil if valid, error otherwise
func (k *Keynote) Validate() error {
	if strings.TrimSpace(k.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(k.Affiliation) == "" {
		return ErrEmptyAffiliation
	}
	return nil
}

// HasSchedule reports whether the talk has been given a slot.
func (k *Keynote) HasSchedule() bool {
	return k.Date != "" || k.Time != ""
}
