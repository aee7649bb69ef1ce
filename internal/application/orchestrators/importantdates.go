package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mmmweb/internal/domain/importantdate"
)

// DateGatewayForOrchestrator defines the backend surface needed by the important date orchestrators.
type DateGatewayForOrchestrator interface {
	CreateImportantDate(ctx context.Context, d importantdate.Date) (importantdate.Date, error)
	UpdateImportantDate(ctx context.Context, id int64, d importantdate.Date) (importantdate.Date, error)
	DeleteImportantDate(ctx context.Context, id int64) error
}

// SaveImportantDateInput carries input for the save important date orchestrator.
type SaveImportantDateInput struct {
	Date importantdate.Date
}

// SaveImportantDateDeps holds dependencies for SaveImportantDate.
type SaveImportantDateDeps struct {
	Dates DateGatewayForOrchestrator
	Now   func() time.Time
}

// ExecuteSaveImportantDate creates or updates a deadline. The future-date
// rule is checked locally before any backend call; a past date never leaves
// the process.
// PRE: Date has title and an ISO due date strictly after Now()
// POST: Backend holds the deadline
func ExecuteSaveImportantDate(ctx context.Context, input SaveImportantDateInput, deps SaveImportantDateDeps) (importantdate.Date, error) {
	d := input.Date
	if err := d.Validate(deps.Now()); err != nil {
		return importantdate.Date{}, err
	}

	var (
		saved importantdate.Date
		err   error
	)
	if d.ID == 0 {
		saved, err = deps.Dates.CreateImportantDate(ctx, d)
	} else {
		saved, err = deps.Dates.UpdateImportantDate(ctx, d.ID, d)
	}
	if err != nil {
		return importantdate.Date{}, err
	}

	slog.Info("content_event", "event", "important_date_saved", "date_id", saved.ID, "due_date", saved.DueDate)
	return saved, nil
}

// DeleteImportantDateInput carries input for the delete important date orchestrator.
type DeleteImportantDateInput struct {
	ID int64
}

// ExecuteDeleteImportantDate removes a deadline.
func ExecuteDeleteImportantDate(ctx context.Context, input DeleteImportantDateInput, deps SaveImportantDateDeps) error {
	if input.ID == 0 {
		return errors.New("date ID is required")
	}
	if err := deps.Dates.DeleteImportantDate(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("content_event", "event", "important_date_deleted", "date_id", input.ID)
	return nil
}
