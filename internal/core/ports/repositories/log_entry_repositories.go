package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// LogEntryReader defines read access to the audit log. Writes happen inside
// the transactions of the mutations they describe, so there is deliberately
// no standalone writer interface.
type LogEntryReader interface {
	// FindLogEntriesByShareOwner lists the audit trail of a member, newest
	// first. Entries re-attributed to the member's account are included.
	FindLogEntriesByShareOwner(ctx context.Context, ownerID int64) ([]domain.LogEntry, error)
}
