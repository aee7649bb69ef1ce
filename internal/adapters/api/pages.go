package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/page"
)

// PageBySlug fetches a page document by its slug.
func (c *Client) PageBySlug(ctx context.Context, slug string) (page.Page, error) {
	res := c.Get(ctx, "/pages/slug/"+slug)
	if err := res.AsError(); err != nil {
		return page.Page{}, err
	}
	var p page.Page
	if err := res.Decode(&p); err != nil {
		return page.Page{}, fmt.Errorf("malformed page response: %w", err)
	}
	return p, nil
}

// CreatePage persists a new page document.
func (c *Client) CreatePage(ctx context.Context, p page.Page) (page.Page, error) {
	res := c.Post(ctx, "/pages", p)
	if err := res.AsError(); err != nil {
		return page.Page{}, err
	}
	var created page.Page
	if err := res.Decode(&created); err != nil {
		return page.Page{}, fmt.Errorf("malformed page response: %w", err)
	}
	return created, nil
}

// UpdatePage replaces a page document via full-document PATCH.
func (c *Client) UpdatePage(ctx context.Context, id int64, p page.Page) (page.Page, error) {
	res := c.Patch(ctx, fmt.Sprintf("/pages/%d", id), p)
	if err := res.AsError(); err != nil {
		return page.Page{}, err
	}
	var updated page.Page
	if err := res.Decode(&updated); err != nil {
		return page.Page{}, fmt.Errorf("malformed page response: %w", err)
	}
	return updated, nil
}
