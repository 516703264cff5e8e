package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// ShareOwnershipReader defines read operations for share ownership records.
type ShareOwnershipReader interface {
	// FindShareOwnershipByID retrieves a single share ownership record.
	FindShareOwnershipByID(ctx context.Context, ownershipID int64) (*domain.ShareOwnership, error)
}

// ShareOwnershipWriter defines the mutating operations. Every method runs a
// single all-or-nothing transaction containing the mutation and its audit
// entry; no partial write is ever observable.
type ShareOwnershipWriter interface {
	// CreateShareOwnerships inserts a batch of ownerships together with the
	// accounting recap row and the creation log entry.
	CreateShareOwnerships(ctx context.Context, ownerships []domain.ShareOwnership, recap domain.ExtraSharesAccountingRecap, logEntry domain.LogEntry) ([]domain.ShareOwnership, error)

	// UpdateShareOwnership updates a record. When logEntry is non-nil it is
	// written in the same transaction. Callers pass nil when the before and
	// after snapshots are identical.
	UpdateShareOwnership(ctx context.Context, ownership domain.ShareOwnership, logEntry *domain.LogEntry) error

	// DeleteShareOwnership removes a record and writes the mandatory
	// pre-delete snapshot log entry in the same transaction.
	DeleteShareOwnership(ctx context.Context, ownershipID int64, logEntry domain.LogEntry) error
}

// ShareOwnershipRepositoryFacade combines the ownership repository interfaces.
type ShareOwnershipRepositoryFacade interface {
	ShareOwnershipReader
	ShareOwnershipWriter
}
