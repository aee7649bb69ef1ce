package page

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Section types form a closed set. Decoding rejects anything else so a new
// section kind is an explicit decision at this dispatch point, not a
// silently-ignored runtime case.
const (
	TypeText           = "text"
	TypeImportantDates = "important-dates"
	TypeNews           = "news"
	TypeKeynotes       = "keynotes"
)

// ValidTypes contains all valid section types.
var ValidTypes = []string{TypeText, TypeImportantDates, TypeNews, TypeKeynotes}

// TextData is the payload of a text section: a rich-text HTML fragment.
type TextData struct {
	HTML string `json:"html"`
}

// RelatedData is the payload of a news or keynotes section. The actual items
// are fetched independently; the section only carries the owning page.
type RelatedData struct {
	PageID int64 `json:"page_id"`
}

// Section is one typed content block inside a page document. Exactly one of
// the payload fields matching Type is set.
type Section struct {
	ID   string
	Type string

	Text           *TextData
	ImportantDates *struct{}
	News           *RelatedData
	Keynotes       *RelatedData
}

// NewTextSection creates a text section with a fresh ID.
func NewTextSection(html string) Section {
	return Section{
		ID:   uuid.New().String(),
		Type: TypeText,
		Text: &TextData{HTML: html},
	}
}

// NewImportantDatesSection creates an important-dates marker section.
func NewImportantDatesSection() Section {
	return Section{
		ID:             uuid.New().String(),
		Type:           TypeImportantDates,
		ImportantDates: &struct{}{},
	}
}

// Validate checks that the section carries a known type with a matching payload.
func (s *Section) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("section has no id")
	}
	switch s.Type {
	case TypeText:
		if s.Text == nil {
			return fmt.Errorf("text section %q has no data", s.ID)
		}
	case TypeImportantDates:
		// marker section, no payload required
	case TypeNews:
		if s.News == nil {
			return fmt.Errorf("news section %q has no data", s.ID)
		}
	case TypeKeynotes:
		if s.Keynotes == nil {
			return fmt.Errorf("keynotes section %q has no data", s.ID)
		}
	default:
		return fmt.Errorf("unknown section type %q", s.Type)
	}
	return nil
}

// sectionWire is the persisted shape: {id, type, data}.
type sectionWire struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the section in the {id, type, data} wire shape.
func (s Section) MarshalJSON() ([]byte, error) {
	w := sectionWire{ID: s.ID, Type: s.Type}
	var payload any
	switch s.Type {
	case TypeText:
		payload = s.Text
	case TypeImportantDates:
		payload = struct{}{}
	case TypeNews:
		payload = s.News
	case TypeKeynotes:
		payload = s.Keynotes
	default:
		return nil, fmt.Errorf("unknown section type %q", s.Type)
	}
	if payload == nil {
		payload = struct{}{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	w.Data = data
	return json.Marshal(w)
}

// UnmarshalJSON decodes the {id, type, data} wire shape, rejecting unknown types.
func (s *Section) UnmarshalJSON(b []byte) error {
	var w sectionWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.ID = w.ID
	s.Type = w.Type
	s.Text = nil
	s.ImportantDates = nil
	s.News = nil
	s.Keynotes = nil

	if len(w.Data) == 0 {
		w.Data = []byte("{}")
	}
	switch w.Type {
	case TypeText:
		s.Text = &TextData{}
		return json.Unmarshal(w.Data, s.Text)
	case TypeImportantDates:
		s.ImportantDates = &struct{}{}
		return nil
	case TypeNews:
		s.News = &RelatedData{}
		return json.Unmarshal(w.Data, s.News)
	case TypeKeynotes:
		s.Keynotes = &RelatedData{}
		return json.Unmarshal(w.Data, s.Keynotes)
	default:
		return fmt.Errorf("unknown section type %q", w.Type)
	}
}
