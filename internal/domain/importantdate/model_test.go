package importantdate_test

import (
	"errors"
	"testing"
	"time"

	"mmmweb/internal/domain/importantdate"
)

// TestDate_Validate tests the strictly-in-the-future rule.
func TestDate_Validate(t *testing.T) {
	now := time.Date(2027, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    importantdate.Date
		wantErr error
	}{
		{
			name: "tomorrow is valid",
			date: importantdate.Date{DueDate: "2027-03-16", Title: "Paper submission"},
		},
		{
			name:    "today is rejected",
			date:    importantdate.Date{DueDate: "2027-03-15", Title: "Paper submission"},
			wantErr: importantdate.ErrDateNotFuture,
		},
		{
			name:    "yesterday is rejected",
			date:    importantdate.Date{DueDate: "2027-03-14", Title: "Paper submission"},
			wantErr: importantdate.ErrDateNotFuture,
		},
		{
			name:    "empty title",
			date:    importantdate.Date{DueDate: "2027-06-01"},
			wantErr: importantdate.ErrEmptyTitle,
		},
		{
			name:    "malformed date",
			date:    importantdate.Date{DueDate: "June 1st", Title: "Notification"},
			wantErr: importantdate.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.date.Validate(now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestDate_ValidateMessage pins the literal inline validation message.
func TestDate_ValidateMessage(t *testing.T) {
	d := importantdate.Date{DueDate: "2020-01-01", Title: "x"}
	err := d.Validate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil || err.Error() != "Date must be in the future." {
		t.Errorf("error message = %v, want literal future-date message", err)
	}
}

// TestSortAscending tests ordering by due date.
func TestSortAscending(t *testing.T) {
	dates := []importantdate.Date{
		{ID: 1, DueDate: "2027-09-01", Title: "Camera-ready"},
		{ID: 2, DueDate: "2027-03-01", Title: "Submission"},
		{ID: 3, DueDate: "2027-06-15", Title: "Notification"},
	}
	importantdate.SortAscending(dates)
	want := []int64{2, 3, 1}
	for i, id := range want {
		if dates[i].ID != id {
			t.Errorf("position %d = id %d, want %d", i, dates[i].ID, id)
		}
	}
}
