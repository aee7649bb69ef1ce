package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mmmweb/internal/domain/news"
)

// NewsGatewayForOrchestrator defines the backend surface needed by the news orchestrators.
type NewsGatewayForOrchestrator interface {
	CreateNews(ctx context.Context, item news.Item) (news.Item, error)
	UpdateNews(ctx context.Context, id int64, item news.Item) (news.Item, error)
	DeleteNews(ctx context.Context, id int64) error
}

// SaveNewsInput carries input for the save news orchestrator.
type SaveNewsInput struct {
	Item news.Item
}

// SaveNewsDeps holds dependencies for SaveNews.
type SaveNewsDeps struct {
	News NewsGatewayForOrchestrator
}

// ExecuteSaveNews creates or updates a news item. Validation runs locally
// first so a malformed item never reaches the backend.
// PRE: Item has title, date and content; LinkText (if set) occurs in Content
// POST: Backend holds the item
func ExecuteSaveNews(ctx context.Context, input SaveNewsInput, deps SaveNewsDeps) (news.Item, error) {
	item := input.Item
	if err := item.Validate(); err != nil {
		return news.Item{}, err
	}

	var (
		saved news.Item
		err   error
	)
	if item.ID == 0 {
		saved, err = deps.News.CreateNews(ctx, item)
	} else {
		saved, err = deps.News.UpdateNews(ctx, item.ID, item)
	}
	if err != nil {
		return news.Item{}, err
	}

	slog.Info("content_event", "event", "news_saved", "news_id", saved.ID, "page_id", saved.PageID)
	return saved, nil
}

// DeleteNewsInput carries input for the delete news orchestrator.
type DeleteNewsInput struct {
	ID int64
}

// ExecuteDeleteNews removes a news item.
func ExecuteDeleteNews(ctx context.Context, input DeleteNewsInput, deps SaveNewsDeps) error {
	if input.ID == 0 {
		return errors.New("news ID is required")
	}
	if err := deps.News.DeleteNews(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("content_event", "event", "news_deleted", "news_id", input.ID)
	return nil
}
