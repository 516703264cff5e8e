package pgsql

import (
	"context"
	"fmt"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	"github.com/hoelscher-berlin/tapir/internal/models"
	"github.com/hoelscher-berlin/tapir/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLogEntryRepository struct {
	db *pgxpool.Pool
}

func newPgxLogEntryRepository(db *pgxpool.Pool) portsrepo.LogEntryReader {
	return &PgxLogEntryRepository{db: db}
}

var _ portsrepo.LogEntryReader = (*PgxLogEntryRepository)(nil)

// insertLogEntryTx writes an audit entry within the caller's transaction.
// All mutation repositories use this so that a mutation and its audit record
// always commit or roll back together.
func insertLogEntryTx(ctx context.Context, tx pgx.Tx, entry domain.LogEntry) error {
	modelEntry, err := mapping.ToModelLogEntry(entry)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO log_entries (entry_type, actor_id, created_at, share_owner_id, user_id, draft_user_id, before_snapshot, after_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		modelEntry.EntryType,
		modelEntry.ActorID,
		modelEntry.CreatedAt,
		modelEntry.ShareOwnerID,
		modelEntry.UserID,
		modelEntry.DraftUserID,
		modelEntry.Before,
		modelEntry.After,
	)
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

func (r *PgxLogEntryRepository) FindLogEntriesByShareOwner(ctx context.Context, ownerID int64) ([]domain.LogEntry, error) {
	// Entries re-attributed to the owner's login account carry user_id
	// instead of share_owner_id, so join via the owner row.
	query := `
		SELECT le.id, le.entry_type, le.actor_id, le.created_at, le.share_owner_id, le.user_id, le.draft_user_id, le.before_snapshot, le.after_snapshot
		FROM log_entries le
		WHERE le.share_owner_id = $1
		   OR le.user_id = (SELECT user_id FROM share_owners WHERE id = $1)
		ORDER BY le.created_at DESC, le.id DESC;
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log entries for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	entries := []domain.LogEntry{}
	for rows.Next() {
		var m models.LogEntry
		if err := rows.Scan(
			&m.ID,
			&m.EntryType,
			&m.ActorID,
			&m.CreatedAt,
			&m.ShareOwnerID,
			&m.UserID,
			&m.DraftUserID,
			&m.Before,
			&m.After,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log entry row: %w", err)
		}
		d, err := mapping.ToDomainLogEntry(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log entry rows: %w", err)
	}
	return entries, nil
}
