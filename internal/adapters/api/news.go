package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/news"
)

// ListNews fetches all news items. The endpoint is unfiltered; narrowing to
// a page happens in the projection.
func (c *Client) ListNews(ctx context.Context) ([]news.Item, error) {
	res := c.Get(ctx, "/news")
	if err := res.AsError(); err != nil {
		return nil, err
	}
	var items []news.Item
	if err := res.Decode(&items); err != nil {
		return nil, fmt.Errorf("malformed news response: %w", err)
	}
	return items, nil
}

// CreateNews persists a new news item.
func (c *Client) CreateNews(ctx context.Context, item news.Item) (news.Item, error) {
	res := c.Post(ctx, "/news", item)
	if err := res.AsError(); err != nil {
		return news.Item{}, err
	}
	var created news.Item
	if err := res.Decode(&created); err != nil {
		return news.Item{}, fmt.Errorf("malformed news response: %w", err)
	}
	return created, nil
}

// UpdateNews patches an existing news item.
func (c *Client) UpdateNews(ctx context.Context, id int64, item news.Item) (news.Item, error) {
	res := c.Patch(ctx, fmt.Sprintf("/news/%d", id), item)
	if err := res.AsError(); err != nil {
		return news.Item{}, err
	}
	var updated news.Item
	if err := res.Decode(&updated); err != nil {
		return news.Item{}, fmt.Errorf("malformed news response: %w", err)
	}
	return updated, nil
}

// DeleteNews removes a news item.
func (c *Client) DeleteNews(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/news/%d", id)).AsError()
}
