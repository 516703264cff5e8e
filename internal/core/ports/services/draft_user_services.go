package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// DraftUserSvcFacade manages prospective members up to their conversion.
type DraftUserSvcFacade interface {
	// CreateDraftUser creates a draft from the member office.
	CreateDraftUser(ctx context.Context, actor domain.Actor, req dto.CreateDraftUserRequest) (*domain.DraftUser, error)

	// RegisterDraftUser is the public self-registration path (no actor).
	RegisterDraftUser(ctx context.Context, req dto.RegisterDraftUserRequest) (*domain.DraftUser, error)

	ListDraftUsers(ctx context.Context, actor domain.Actor) ([]domain.DraftUser, error)
	GetDraftUser(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error)
	UpdateDraftUser(ctx context.Context, actor domain.Actor, draftID int64, req dto.UpdateDraftUserRequest) (*domain.DraftUser, error)
	DeleteDraftUser(ctx context.Context, actor domain.Actor, draftID int64) error

	// Workflow flags; independent booleans settable in any order.
	MarkSignedMembershipAgreement(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error)
	MarkAttendedWelcomeSession(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error)
	RegisterPayment(ctx context.Context, actor domain.Actor, draftID int64) (*domain.DraftUser, error)

	// ConvertToShareOwner ends the draft: the share owner and its initial
	// ownership batch are created in one transaction with the draft removal.
	ConvertToShareOwner(ctx context.Context, actor domain.Actor, draftID int64) (*domain.ShareOwner, error)
}
