package orchestrators

import (
	"context"
	"log/slog"

	"mmmweb/internal/domain/page"
	"mmmweb/internal/domain/richtext"
)

// PageGatewayForSave defines the backend surface needed by SavePage.
type PageGatewayForSave interface {
	CreatePage(ctx context.Context, p page.Page) (page.Page, error)
	UpdatePage(ctx context.Context, id int64, p page.Page) (page.Page, error)
}

// SavePageInput carries input for the save page orchestrator.
type SavePageInput struct {
	Page page.Page
}

// SavePageDeps holds dependencies for SavePage.
type SavePageDeps struct {
	Pages PageGatewayForSave
}

// ExecuteSavePage persists a page document, creating when the ID is zero and
// replacing the full document otherwise. Text section HTML is normalized
// before the document is validated or sent: scripts and event handlers are
// stripped, embed attributes are pinned to their canonical form.
// PRE: Page has a valid slug and title
// POST: The backend holds the normalized document
func ExecuteSavePage(ctx context.Context, input SavePageInput, deps SavePageDeps) (page.Page, error) {
	p := input.Page

	for i, s := range p.JSON.Sections {
		if s.Type != page.TypeText || s.Text == nil {
			continue
		}
		clean, err := richtext.NormalizeHTML(s.Text.HTML)
		if err != nil {
			return page.Page{}, err
		}
		p.JSON.Sections[i].Text.HTML = clean
	}

	if err := p.Validate(); err != nil {
		return page.Page{}, err
	}

	var (
		saved page.Page
		err   error
	)
	if p.ID == 0 {
		saved, err = deps.Pages.CreatePage(ctx, p)
	} else {
		saved, err = deps.Pages.UpdatePage(ctx, p.ID, p)
	}
	if err != nil {
		return page.Page{}, err
	}

	slog.Info("content_event", "event", "page_saved", "page_id", saved.ID, "slug", saved.Slug, "sections", len(saved.JSON.Sections))
	return saved, nil
}
