package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"mmmweb/internal/domain/importantdate"
)

type fakeDates struct {
	calls int
}

func (f *fakeDates) CreateImportantDate(_ context.Context, d importantdate.Date) (importantdate.Date, error) {
	f.calls++
	d.ID = 1
	return d, nil
}

func (f *fakeDates) UpdateImportantDate(_ context.Context, id int64, d importantdate.Date) (importantdate.Date, error) {
	f.calls++
	return d, nil
}

func (f *fakeDates) DeleteImportantDate(_ context.Context, id int64) error {
	f.calls++
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestExecuteSaveImportantDate(t *testing.T) {
	tests := []struct {
		name      string
		date      importantdate.Date
		wantErr   error
		wantCalls int
	}{
		{
			name:      "future date saves",
			date:      importantdate.Date{DueDate: "2026-06-01", Title: "Submission deadline"},
			wantCalls: 1,
		},
		{
			name:      "past date rejected before any backend call",
			date:      importantdate.Date{DueDate: "2026-01-01", Title: "Too late"},
			wantErr:   importantdate.ErrDateNotFuture,
			wantCalls: 0,
		},
		{
			name:      "today rejected",
			date:      importantdate.Date{DueDate: "2026-03-15", Title: "Today"},
			wantErr:   importantdate.ErrDateNotFuture,
			wantCalls: 0,
		},
		{
			name:      "missing title rejected",
			date:      importantdate.Date{DueDate: "2026-06-01"},
			wantErr:   importantdate.ErrEmptyTitle,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := &fakeDates{}
			deps := SaveImportantDateDeps{Dates: fd, Now: fixedNow}
			_, err := ExecuteSaveImportantDate(context.Background(), SaveImportantDateInput{Date: tt.date}, deps)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if fd.calls != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d", fd.calls, tt.wantCalls)
			}
		})
	}
}

func TestExecuteDeleteImportantDate_RequiresID(t *testing.T) {
	fd := &fakeDates{}
	deps := SaveImportantDateDeps{Dates: fd, Now: fixedNow}
	if err := ExecuteDeleteImportantDate(context.Background(), DeleteImportantDateInput{}, deps); err == nil {
		t.Error("expected error for zero ID")
	}
	if err := ExecuteDeleteImportantDate(context.Background(), DeleteImportantDateInput{ID: 3}, deps); err != nil {
		t.Errorf("delete failed: %v", err)
	}
}
