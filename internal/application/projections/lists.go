package projections

import (
	"context"

	"mmmweb/internal/domain/faq"
	"mmmweb/internal/domain/importantdate"
	"mmmweb/internal/domain/keynote"
	"mmmweb/internal/domain/news"
	"mmmweb/internal/domain/organization"
)

// NewsListAPI defines the gateway surface needed by the news list.
type NewsListAPI interface {
	ListNews(ctx context.Context) ([]news.Item, error)
}

// QueryGetNewsList returns the news items for a page. The backend list
// endpoint is unfiltered; the page narrowing lives here so a contract
// clarification only touches one place. Pass pageID 0 for the full list
// (admin overview).
func QueryGetNewsList(ctx context.Context, api NewsListAPI, pageID int64) ([]news.Item, error) {
	items, err := api.ListNews(ctx)
	if err != nil {
		return nil, err
	}
	if pageID == 0 {
		return items, nil
	}
	return news.ForPage(items, pageID), nil
}

// KeynoteListAPI defines the gateway surface needed by the keynotes list.
type KeynoteListAPI interface {
	ListKeynotes(ctx context.Context) ([]keynote.Keynote, error)
}

// QueryGetKeynotes returns all keynotes in backend order.
func QueryGetKeynotes(ctx context.Context, api KeynoteListAPI) ([]keynote.Keynote, error) {
	return api.ListKeynotes(ctx)
}

// DateListAPI defines the gateway surface needed by the dates list.
type DateListAPI interface {
	ListImportantDates(ctx context.Context) ([]importantdate.Date, error)
}

// QueryGetImportantDates returns all deadlines sorted ascending by due date.
func QueryGetImportantDates(ctx context.Context, api DateListAPI) ([]importantdate.Date, error) {
	dates, err := api.ListImportantDates(ctx)
	if err != nil {
		return nil, err
	}
	importantdate.SortAscending(dates)
	return dates, nil
}

// FaqListAPI defines the gateway surface needed by the FAQ list.
type FaqListAPI interface {
	ListFaqs(ctx context.Context) ([]faq.Item, error)
}

// QueryGetFaqs returns all FAQ items sorted ascending by order.
func QueryGetFaqs(ctx context.Context, api FaqListAPI) ([]faq.Item, error) {
	items, err := api.ListFaqs(ctx)
	if err != nil {
		return nil, err
	}
	faq.SortByOrder(items)
	return items, nil
}

// MemberListAPI defines the gateway surface needed by the organization view.
type MemberListAPI interface {
	ListMembers(ctx context.Context) ([]organization.Member, error)
}

// QueryGetOrganization returns committee members grouped by category in
// first-appearance order.
func QueryGetOrganization(ctx context.Context, api MemberListAPI) ([]organization.CategoryGroup, error) {
	members, err := api.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	return organization.GroupByCategory(members), nil
}
