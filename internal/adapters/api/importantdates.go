package api

import (
	"context"
	"fmt"

	"mmmweb/internal/domain/importantdate"
)

// ListImportantDates fetches all important dates.
func (c *Client) ListImportantDates(ctx context.Context) ([]importantdate.Date, error) {
	res := c.Get(ctx, "/important-dates")
	if err := res.AsError(); err != nil {
		return nil, err
	}
	var dates []importantdate.Date
	if err := res.Decode(&dates); err != nil {
		return nil, fmt.Errorf("malformed important-dates response: %w", err)
	}
	return dates, nil
}

// CreateImportantDate persists a new date.
func (c *Client) CreateImportantDate(ctx context.Context, d importantdate.Date) (importantdate.Date, error) {
	res := c.Post(ctx, "/important-dates", d)
	if err := res.AsError(); err != nil {
		return importantdate.Date{}, err
	}
	var created importantdate.Date
	if err := res.Decode(&created); err != nil {
		return importantdate.Date{}, fmt.Errorf("malformed important-date response: %w", err)
	}
	return created, nil
}

// UpdateImportantDate patches an existing date.
func (c *Client) UpdateImportantDate(ctx context.Context, id int64, d importantdate.Date) (importantdate.Date, error) {
	res := c.Patch(ctx, fmt.Sprintf("/important-dates/%d", id), d)
	if err := res.AsError(); err != nil {
		return importantdate.Date{}, err
	}
	var updated importantdate.Date
	if err := res.Decode(&updated); err != nil {
		return importantdate.Date{}, fmt.Errorf("malformed important-date response: %w", err)
	}
	return updated, nil
}

// DeleteImportantDate removes a date.
func (c *Client) DeleteImportantDate(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/important-dates/%d", id)).AsError()
}
