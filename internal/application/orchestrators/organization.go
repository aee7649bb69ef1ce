package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"mmmweb/internal/domain/organization"
)

// MemberGatewayForOrchestrator defines the backend surface needed by the organization orchestrators.
type MemberGatewayForOrchestrator interface {
	CreateMember(ctx context.Context, m organization.Member) (organization.Member, error)
	UpdateMember(ctx context.Context, id int64, m organization.Member) (organization.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	RenameCategory(ctx context.Context, oldName, newName string) error
	DeleteCategory(ctx context.Context, category string) error
}

// SaveMemberInput carries input for the save member orchestrator.
type SaveMemberInput struct {
	Member organization.Member
}

// SaveMemberDeps holds dependencies for SaveMember.
type SaveMemberDeps struct {
	Members MemberGatewayForOrchestrator
}

// ExecuteSaveMember creates or updates a committee member.
// PRE: Member has name and category
// POST: Backend holds the member
func ExecuteSaveMember(ctx context.Context, input SaveMemberInput, deps SaveMemberDeps) (organization.Member, error) {
	m := input.Member
	if err := m.Validate(); err != nil {
		return organization.Member{}, err
	}

	var (
		saved organization.Member
		err   error
	)
	if m.ID == 0 {
		saved, err = deps.Members.CreateMember(ctx, m)
	} else {
		saved, err = deps.Members.UpdateMember(ctx, m.ID, m)
	}
	if err != nil {
		return organization.Member{}, err
	}

	slog.Info("content_event", "event", "member_saved", "member_id", saved.ID, "category", saved.Category)
	return saved, nil
}

// DeleteMemberInput carries input for the delete member orchestrator.
type DeleteMemberInput struct {
	ID int64
}

// ExecuteDeleteMember removes a committee member.
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps SaveMemberDeps) error {
	if input.ID == 0 {
		return errors.New("member ID is required")
	}
	if err := deps.Members.DeleteMember(ctx, input.ID); err != nil {
		return err
	}
	slog.Info("content_event", "event", "member_deleted", "member_id", input.ID)
	return nil
}

// RenameCategoryInput carries input for the rename category orchestrator.
type RenameCategoryInput struct {
	OldName string
	NewName string
}

// ExecuteRenameCategory renames a committee category across all its members.
// PRE: Both names are non-empty and differ
// POST: All members of OldName now carry NewName
func ExecuteRenameCategory(ctx context.Context, input RenameCategoryInput, deps SaveMemberDeps) error {
	if input.OldName == "" || input.NewName == "" {
		return errors.New("category names are required")
	}
	if input.OldName == input.NewName {
		return errors.New("new category name must differ")
	}
	if err := deps.Members.RenameCategory(ctx, input.OldName, input.NewName); err != nil {
		return err
	}
	slog.Info("content_event", "event", "category_renamed", "old", input.OldName, "new", input.NewName)
	return nil
}

// DeleteCategoryInput carries input for the delete category orchestrator.
type DeleteCategoryInput struct {
	Category string
}

// ExecuteDeleteCategory removes a category and every member in it.
// PRE: Category is non-empty
// POST: No member carries the category
func ExecuteDeleteCategory(ctx context.Context, input DeleteCategoryInput, deps SaveMemberDeps) error {
	if input.Category == "" {
		return errors.New("category is required")
	}
	if err := deps.Members.DeleteCategory(ctx, input.Category); err != nil {
		return err
	}
	slog.Info("content_event", "event", "category_deleted", "category", input.Category)
	return nil
}
