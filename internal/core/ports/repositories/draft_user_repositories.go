package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// DraftUserReader defines read operations for prospective members.
type DraftUserReader interface {
	FindDraftUserByID(ctx context.Context, draftID int64) (*domain.DraftUser, error)
	FindDraftUsers(ctx context.Context) ([]domain.DraftUser, error)
}

// DraftUserWriter defines write operations for prospective members.
type DraftUserWriter interface {
	// SaveDraftUser persists a new draft and returns it with its assigned ID.
	SaveDraftUser(ctx context.Context, draft domain.DraftUser) (*domain.DraftUser, error)

	// UpdateDraftUser updates a draft; a non-nil logEntry is written in the
	// same transaction.
	UpdateDraftUser(ctx context.Context, draft domain.DraftUser, logEntry *domain.LogEntry) error

	// DeleteDraftUser removes a draft.
	DeleteDraftUser(ctx context.Context, draftID int64) error

	// ConvertDraftUser atomically creates the share owner with its initial
	// ownership batch, writes the conversion log entry and deletes the
	// draft. Either all records change or none do.
	ConvertDraftUser(ctx context.Context, draftID int64, owner domain.ShareOwner, ownerships []domain.ShareOwnership, logEntry domain.LogEntry) (*domain.ShareOwner, error)
}

// DraftUserRepositoryFacade combines the draft user repository interfaces.
type DraftUserRepositoryFacade interface {
	DraftUserReader
	DraftUserWriter
}
