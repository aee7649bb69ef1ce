package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/organization"
)

// ListMembers fetches all organization committee members.
func (c *Client) ListMembers(ctx context.Context) ([]organization.Member, error) {
	res := c.Get(ctx, "/organizations")
	if err := res.AsError(); err != nil {
		return nil, err
	}
	var members []organization.Member
	if err := res.Decode(&members); err != nil {
		return nil, fmt.Errorf("malformed organizations response: %w", err)
	}
	return members, nil
}

// CreateMember persists a new committee member.
func (c *Client) CreateMember(ctx context.Context, m organization.Member) (organization.Member, error) {
	res := c.Post(ctx, "/organizations", m)
	if err := res.AsError(); err != nil {
		return organization.Member{}, err
	}
	var created organization.Member
	if err := res.Decode(&created); err != nil {
		return organization.Member{}, fmt.Errorf("malformed organization response: %w", err)
	}
	return created, nil
}

// UpdateMember replaces an existing committee member.
func (c *Client) UpdateMember(ctx context.Context, id int64, m organization.Member) (organization.Member, error) {
	res := c.Put(ctx, fmt.Sprintf("/organizations/%d", id), m)
	if err := res.AsError(); err != nil {
		return organization.Member{}, err
	}
	var updated organization.Member
	if err := res.Decode(&updated); err != nil {
		return organization.Member{}, fmt.Errorf("malformed organization response: %w", err)
	}
	return updated, nil
}

// DeleteMember removes a committee member.
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/organizations/%d", id)).AsError()
}

// RenameCategory bulk-renames a committee category across all its members.
func (c *Client) RenameCategory(ctx context.Context, oldName, newName string) error {
	body := map[string]string{"old_category": oldName, "new_category": newName}
	return c.Patch(ctx, "/organizations/category", body).AsError()
}

// DeleteCategory removes a category, cascade-deleting its members.
func (c *Client) DeleteCategory(ctx context.Context, category string) error {
	body := map[string]string{"category": category}
	return c.Post(ctx, "/organizations/category", body).AsError()
}
