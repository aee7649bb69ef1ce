package importantdate

import (
	"errors"
	"sort"
	"time"
)

// Domain errors. ErrDateNotFuture carries the exact message shown inline on
// the admin form.
var (
	ErrEmptyTitle    = errors.New("date description cannot be empty")
	ErrInvalidDate   = errors.New("due date must be an ISO date (YYYY-MM-DD)")
	ErrDateNotFuture = errors.New("Date must be in the future.")
)

// Date is a single conference deadline (submission, notification, camera-ready...).
type Date struct {
	ID      int64  `json:"id"`
	DueDate string `json:"due_date"` // ISO date YYYY-MM-DD
	Title   string `json:"title"`
}

// Validate checks the date against "now". The due date must be strictly
// after today; a date equal to or before today is rejected before any
// request is sent.
// PRE: now is the current local time
// POST: Returns nil if valid, error otherwise
func (d *Date) Validate(now time.Time) error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	due, err := time.Parse("2006-01-02", d.DueDate)
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !due.After(today) {
		return ErrDateNotFuture
	}
	return nil
}

// DisplayDate formats the due date for visitors.
func (d *Date) DisplayDate() string {
	t, err := time.Parse("2006-01-02", d.DueDate)
	if err != nil {
		return d.DueDate
	}
	return t.Format("2 January 2006")
}

// SortAscending orders dates by due date, earliest first. ISO dates compare
// lexicographically.
func SortAscending(dates []Date) {
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].DueDate < dates[j].DueDate
	})
}
