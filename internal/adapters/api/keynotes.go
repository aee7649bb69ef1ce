package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/keynote"
)

// ListKeynotes fetches all keynotes.
func (c *Client) ListKeynotes(ctx context.Context) ([]keynote.Keynote, error) {
	res := c.Get(ctx, "/keynotes")
	if err := res.AsError(); err != nil {
		return nil, err
	}
	var items []keynote.Keynote
	if err := res.Decode(&items); err != nil {
		return nil, fmt.Errorf("malformed keynotes response: %w", err)
	}
	return items, nil
}

// CreateKeynote persists a new keynote.
func (c *Client) CreateKeynote(ctx context.Context, k keynote.Keynote) (keynote.Keynote, error) {
	res := c.Post(ctx, "/keynotes", k)
	if err := res.AsError(); err != nil {
		return keynote.Keynote{}, err
	}
	var created keynote.Keynote
	if err := res.Decode(&created); err != nil {
		return keynote.Keynote{}, fmt.Errorf("malformed keynote response: %w", err)
	}
	return created, nil
}

// UpdateKeynote replaces an existing keynote.
func (c *Client) UpdateKeynote(ctx context.Context, id int64, k keynote.Keynote) (keynote.Keynote, error) {
	res := c.Put(ctx, fmt.Sprintf("/keynotes/%d", id), k)
	if err := res.AsError(); err != nil {
		return keynote.Keynote{}, err
	}
	var updated keynote.Keynote
	if err := res.Decode(&updated); err != nil {
		return keynote.Keynote{}, fmt.Errorf("malformed keynote response: %w", err)
	}
	return updated, nil
}

// DeleteKeynote removes a keynote.
func (c *Client) DeleteKeynote(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/keynotes/%d", id)).AsError()
}
