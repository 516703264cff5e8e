package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// DocumentSvcFacade renders the fixed-layout membership documents.
type DocumentSvcFacade interface {
	// EmptyMembershipAgreement renders the blank agreement form.
	EmptyMembershipAgreement(ctx context.Context, actor domain.Actor) (*dto.DocumentResult, error)

	// MembershipAgreement renders the agreement pre-filled for one member.
	MembershipAgreement(ctx context.Context, actor domain.Actor, ownerID int64) (*dto.DocumentResult, error)

	// MembershipConfirmation renders the confirmation; num_shares defaults to
	// the count of currently active shares and date to today.
	MembershipConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error)

	// ExtraSharesConfirmation renders the extra-shares confirmation;
	// num_shares and date are required and missing ones fail validation.
	ExtraSharesConfirmation(ctx context.Context, actor domain.Actor, ownerID int64, params dto.DocumentParams) (*dto.DocumentResult, error)
}
