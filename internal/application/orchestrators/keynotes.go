package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mmmweb/internal/domain/keynote"
)

// KeynoteGatewayForOrchestrator defines the backend surface needed by the keynote orchestrators.
type KeynoteGatewayForOrchestrator interface {
	CreateKeynote(ctx context.Context, k keynote.Keynote) (keynote.Keynote, error)
	UpdateKeynote(ctx context.Context, id int64, k keynote.Keynote) (keynote.Keynote, error)
	DeleteKeynote(ctx context.Context, id int64) error
}

// SaveKeynoteInput carries input for the save keynote orchestrator.
type SaveKeynoteInput struct {
	Keynote keynote.Keynote
}

// SaveKeynoteDeps holds dependencies for SaveKeynote.
type SaveKeynoteDeps struct {
	Keynotes KeynoteGatewayForOrchestrator
}

// ExecuteSaveKeynote creates or updates a keynote speaker.
// PRE: Keynote has name and affiliation
// POST: Backend holds the keynote
func ExecuteSaveKeynote(ctx context.Context, input SaveKeynoteInput, deps SaveKeynoteDeps) (keynote.Keynote, error) {
	k := input.Keynote
	if err := k.Validate(); err != nil {
		return keynote.Keynote{}, err
	}

	var (
		saved keynote.Keynote
		err   error
	)
	if k.ID == 0 {
		saved, err = deps.Keynotes.CreateKeynote(ctx, k)
	} else {
		saved, err = deps.Keynotes.UpdateKeynote(ctx, k.ID, k)
	}
	if err != nil {
		return keynote.Keynote{}, err
	}

	slog.Info("content_event", "event", "keynote_saved", "keynote_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// DeleteKeynoteInput carries input for the delete keynote orchestrator.
type DeleteKeynoteInput struct {
	ID int64
}

// ExecuteDeleteKeynote removes a keynote speaker.
func ExecuteDeleteKeynote(ctx context.Context, input DeleteKeynoteInput, deps SaveKeynoteDeps) error {
	if input.ID == 0 {
		return errors.New("keynote ID is required")
	}
	if err := deps.Keynotes.DeleteKeynote(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("content_event", "event", "keynote_deleted", "keynote_id", input.ID)
	return nil
}
