package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// ShareOwnerReader defines read operations for share owner data. Owners are
// always returned with their share ownerships (and linked account, if any)
// populated, so status derivation never needs a second round trip.
type ShareOwnerReader interface {
	// FindShareOwnerByID retrieves a specific share owner by member number.
	FindShareOwnerByID(ctx context.Context, ownerID int64) (*domain.ShareOwner, error)

	// FindShareOwners retrieves the full roster.
	FindShareOwners(ctx context.Context) ([]domain.ShareOwner, error)

	// CountShareOwners returns the total number of share owners.
	CountShareOwners(ctx context.Context) (int, error)
}

// ShareOwnerWriter defines write operations for share owner data.
type ShareOwnerWriter interface {
	// SaveShareOwner persists a new share owner and returns it with its
	// assigned member number.
	SaveShareOwner(ctx context.Context, owner domain.ShareOwner) (*domain.ShareOwner, error)

	// UpdateShareOwner updates an owner. When logEntry is non-nil it is
	// written in the same transaction as the update.
	UpdateShareOwner(ctx context.Context, owner domain.ShareOwner, logEntry *domain.LogEntry) error

	// LinkTapirUser atomically creates the login account, links it to the
	// owner, blanks the owner-side identity copies and re-attributes the
	// owner's log entries to the new account.
	LinkTapirUser(ctx context.Context, owner domain.ShareOwner, user domain.TapirUser, logEntry domain.LogEntry) error
}

// ShareOwnerRepositoryFacade combines all share-owner repository interfaces.
type ShareOwnerRepositoryFacade interface {
	ShareOwnerReader
	ShareOwnerWriter
}
