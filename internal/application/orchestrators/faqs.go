package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mmmweb/internal/domain/faq"
)

// FaqGatewayForOrchestrator defines the backend surface needed by the FAQ orchestrators.
type FaqGatewayForOrchestrator interface {
	ListFaqs(ctx context.Context) ([]faq.Item, error)
	CreateFaq(ctx context.Context, item faq.Item) (faq.Item, error)
	UpdateFaq(ctx context.Context, id int64, item faq.Item) (faq.Item, error)
	DeleteFaq(ctx context.Context, id int64) error
}

// SaveFaqInput carries input for the save FAQ orchestrator.
type SaveFaqInput struct {
	Item faq.Item
}

// SaveFaqDeps holds dependencies for SaveFaq.
type SaveFaqDeps struct {
	Faqs FaqGatewayForOrchestrator
}

// ExecuteSaveFaq creates or updates an FAQ entry. A new entry with no
// explicit order is appended after the current highest order; an empty list
// starts at 1.
// PRE: Item has question and answer
// POST: Backend holds the entry with a resolved order
func ExecuteSaveFaq(ctx context.Context, input SaveFaqInput, deps SaveFaqDeps) (faq.Item, error) {
	item := input.Item
	if err := item.Validate(); err != nil {
		return faq.Item{}, err
	}

	if item.ID == 0 && item.Order == 0 {
		existing, err := deps.Faqs.ListFaqs(ctx)
		if err != nil {
			return faq.Item{}, err
		}
		faq.SortByOrder(existing)
		item.Order = faq.NextOrder(existing)
	}

	var (
		saved faq.Item
		err   error
	)
	if item.ID == 0 {
		saved, err = deps.Faqs.CreateFaq(ctx, item)
	} else {
		saved, err = deps.Faqs.UpdateFaq(ctx, item.ID, item)
	}
	if err != nil {
		return faq.Item{}, err
	}

	slog.Info("content_event", "event", "faq_saved", "faq_id", saved.ID, "order", saved.Order)
	return saved, nil
}

// DeleteFaqInput carries input for the delete FAQ orchestrator.
type DeleteFaqInput struct {
	ID int64
}

// ExecuteDeleteFaq removes an FAQ entry. Remaining orders are left as-is;
// ordering is relative, not dense.
func ExecuteDeleteFaq(ctx context.Context, input DeleteFaqInput, deps SaveFaqDeps) error {
	if input.ID == 0 {
		return errors.New("FAQ ID is required")
	}
	if err := deps.Faqs.DeleteFaq(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("content_event", "event", "faq_deleted", "faq_id", input.ID)
	return nil
}
