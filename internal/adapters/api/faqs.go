package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/faq"
)

// ListFaqs fetches all FAQ items.
func (c *Client) ListFaqs(ctx context.Context) ([]faq.Item, error) {
	res := c.Get(ctx, "/faqs")
	if err := res.AsError(); err != nil {
		return nil, err
	}
	var items []faq.Item
	if err := res.Decode(&items); err != nil {
		return nil, fmt.Errorf("malformed faqs response: %w", err)
	}
	return items, nil
}

// CreateFaq persists a new FAQ item.
func (c *Client) CreateFaq(ctx context.Context, item faq.Item) (faq.Item, error) {
	res := c.Post(ctx, "/faqs", item)
	if err := res.AsError(); err != nil {
		return faq.Item{}, err
	}
	var created faq.Item
	if err := res.Decode(&created); err != nil {
		return faq.Item{}, fmt.Errorf("malformed faq response: %w", err)
	}
	return created, nil
}

// UpdateFaq replaces an existing FAQ item.
func (c *Client) UpdateFaq(ctx context.Context, id int64, item faq.Item) (faq.Item, error) {
	res := c.Put(ctx, fmt.Sprintf("/faqs/%d", id), item)
	if err := res.AsError(); err != nil {
		return faq.Item{}, err
	}
	var updated faq.Item
	if err := res.Decode(&updated); err != nil {
		return faq.Item{}, fmt.Errorf("malformed faq response: %w", err)
	}
	return updated, nil
}

// DeleteFaq removes a FAQ item.
func (c *Client) DeleteFaq(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/faqs/%d", id)).AsError()
}
