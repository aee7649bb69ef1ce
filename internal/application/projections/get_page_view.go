package projections

import (
	"context"

	"mmmweb/internal/domain/importantdate"
	"mmmweb/internal/domain/keynote"
	"mmmweb/internal/domain/news"
	"mmmweb/internal/domain/page"
)

// PageViewPagesAPI defines the gateway surface needed by this projection.
type PageViewPagesAPI interface {
	PageBySlug(ctx context.Context, slug string) (page.Page, error)
}

// PageViewNewsAPI defines the gateway surface needed by this projection.
type PageViewNewsAPI interface {
	ListNews(ctx context.Context) ([]news.Item, error)
}

// PageViewKeynotesAPI defines the gateway surface needed by this projection.
type PageViewKeynotesAPI interface {
	ListKeynotes(ctx context.Context) ([]keynote.Keynote, error)
}

// PageViewDatesAPI defines the gateway surface needed by this projection.
type PageViewDatesAPI interface {
	ListImportantDates(ctx context.Context) ([]importantdate.Date, error)
}

// GetPageViewDeps holds dependencies for the projection.
type GetPageViewDeps struct {
	Pages    PageViewPagesAPI
	News     PageViewNewsAPI
	Keynotes PageViewKeynotesAPI
	Dates    PageViewDatesAPI
}

// PageView is everything a page template needs to render: the page with
// dynamic sections injected, plus the related entities any section refers to.
type PageView struct {
	Page     page.Page
	Sections []page.Section
	News     []news.Item
	Keynotes []keynote.Keynote
	Dates    []importantdate.Date
}

// QueryGetPageView fetches a page by slug and resolves it for rendering.
// A page with no authored sections materializes one empty text section.
// News (slug "home") and keynotes (slug "conference") sections are injected
// after the first text section when related items exist; the authored
// document is never modified. Related fetches run only for the slugs that
// can use them; the page must resolve first, so the calls chain.
func QueryGetPageView(ctx context.Context, deps GetPageViewDeps, slug string) (PageView, error) {
	p, err := deps.Pages.PageBySlug(ctx, slug)
	if err != nil {
		return PageView{}, err
	}
	p.EnsureSeeded()

	view := PageView{Page: p}

	if slug == page.SlugHome {
		all, err := deps.News.ListNews(ctx)
		if err != nil {
			return PageView{}, err
		}
		view.News = news.ForPage(all, p.ID)
	}
	if slug == page.SlugConference {
		items, err := deps.Keynotes.ListKeynotes(ctx)
		if err != nil {
			return PageView{}, err
		}
		view.Keynotes = items
	}

	view.Sections = page.InjectDynamic(p.JSON.Sections, slug, p.ID, len(view.News) > 0, len(view.Keynotes) > 0)

	// The important-dates widget fetches its list independently of the
	// authored document.
	for _, s := range view.Sections {
		if s.Type == page.TypeImportantDates {
			dates, err := deps.Dates.ListImportantDates(ctx)
			if err != nil {
				return PageView{}, err
			}
			importantdate.SortAscending(dates)
			view.Dates = dates
			break
		}
	}

	return view, nil
}
