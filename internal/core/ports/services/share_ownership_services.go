package services

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/dto"
)

// ShareOwnershipSvcFacade manages the lifecycle of individual share records.
type ShareOwnershipSvcFacade interface {
	// CreateShareOwnerships creates a batch of shares for a member, audit
	// entry and accounting recap included, then notifies the member.
	CreateShareOwnerships(ctx context.Context, actor domain.Actor, ownerID int64, req dto.CreateShareOwnershipsRequest) ([]domain.ShareOwnership, error)

	// UpdateShareOwnership edits a share; audit-logged only when the
	// snapshots differ.
	UpdateShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64, req dto.UpdateShareOwnershipRequest) (*domain.ShareOwnership, error)

	// DeleteShareOwnership is the destructive correction: admin-only and
	// always audit-logged with the full pre-delete snapshot.
	DeleteShareOwnership(ctx context.Context, actor domain.Actor, ownershipID int64) error
}
