package page

import (
	"errors"
	"regexp"
)

// Well-known page slugs that carry auto-injected dynamic sections.
const (
	SlugHome       = "home"
	SlugConference = "conference"
)

// Domain errors
var (
	ErrEmptySlug          = errors.New("page slug cannot be empty")
	ErrInvalidSlug        = errors.New("page slug must contain only lowercase letters, digits and hyphens")
	ErrEmptyTitle         = errors.New("page title cannot be empty")
	ErrDuplicateSectionID = errors.New("section ids must be unique within a page")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Document is the authored content of a page: an ordered list of sections.
// Ordering is significant and preserved on save.
type Document struct {
	Sections []Section `json:"sections"`
}

// Page is a site page addressed by its URL-safe slug.
type Page struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Component string   `json:"component"`
	JSON      Document `json:"json"`
}

// Validate checks if the Page has valid data.
// PRE: Page struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Page) Validate() error {
	if p.Slug == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(p.Slug) {
		return ErrInvalidSlug
	}
	if p.Title == "" {
		return ErrEmptyTitle
	}
	seen := make(map[string]bool, len(p.JSON.Sections))
	for _, s := range p.JSON.Sections {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return ErrDuplicateSectionID
		}
		seen[s.ID] = true
	}
	return nil
}

// EnsureSeeded materializes a single empty text section on a page with no
// authored content. The seeded section lives in memory only; it is persisted
// when the admin explicitly saves the page.
// POST: p.JSON.Sections has at least one section
func (p *Page) EnsureSeeded() {
	if len(p.JSON.Sections) == 0 {
		p.JSON.Sections = []Section{NewTextSection("")}
	}
}

// InjectDynamic walks authored sections in order and inserts at most one
// synthetic news (slug "home") or keynotes (slug "conference") section
// immediately after the first text section, when the related entities exist.
// The check inspects the output built so far, so authored news/keynotes
// sections suppress injection and re-running the pass is idempotent.
// Synthetic sections are never written back into the authored document.
func InjectDynamic(sections []Section, slug string, pageID int64, hasNews, hasKeynotes bool) []Section {
	out := make([]Section, 0, len(sections)+2)
	for _, s := range sections {
		out = append(out, s)

		if hasNews && slug == SlugHome && s.Type == TypeText && !containsType(out, TypeNews) {
			out = append(out, Section{
				ID:   "news-auto",
				Type: TypeNews,
				News: &RelatedData{PageID: pageID},
			})
		}

		if hasKeynotes && slug == SlugConference && s.Type == TypeText && !containsType(out, TypeKeynotes) {
			out = append(out, Section{
				ID:       "keynotes-auto",
				Type:     TypeKeynotes,
				Keynotes: &RelatedData{PageID: pageID},
			})
		}
	}
	return out
}

func containsType(sections []Section, sectionType string) bool {
	for _, s := range sections {
		if s.Type == sectionType {
			return true
		}
	}
	return false
}
