package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	portsrepo "github.com/hoelscher-berlin/tapir/internal/core/ports/repositories"
	"github.com/hoelscher-berlin/tapir/internal/models"
	"github.com/hoelscher-berlin/tapir/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxShareOwnershipRepository struct {
	BaseRepository
}

func newPgxShareOwnershipRepository(pool *pgxpool.Pool) portsrepo.ShareOwnershipRepositoryFacade {
	return &PgxShareOwnershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShareOwnershipRepositoryFacade = (*PgxShareOwnershipRepository)(nil)

const shareOwnershipColumns = `id, owner_id, amount_paid, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxShareOwnershipRepository) FindShareOwnershipByID(ctx context.Context, ownershipID int64) (*domain.ShareOwnership, error) {
	query := `SELECT ` + shareOwnershipColumns + ` FROM share_ownerships WHERE id = $1;`
	var m models.ShareOwnership
	err := r.Pool.QueryRow(ctx, query, ownershipID).Scan(
		&m.ID,
		&m.OwnerID,
		&m.AmountPaid,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find share ownership %d: %w", ownershipID, err)
	}
	ownership := mapping.ToDomainShareOwnership(m)
	return &ownership, nil
}

// insertShareOwnershipsTx batch-inserts ownerships within the caller's
// transaction and fills in the assigned IDs.
func insertShareOwnershipsTx(ctx context.Context, tx pgx.Tx, ownerships []domain.ShareOwnership) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO share_ownerships (owner_id, amount_paid, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
	`
	for _, s := range ownerships {
		m := mapping.ToModelShareOwnership(s)
		batch.Queue(query,
			m.OwnerID,
			m.AmountPaid,
			m.StartDate,
			m.EndDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := range ownerships {
		if err := results.QueryRow().Scan(&ownerships[i].ID); err != nil {
			return fmt.Errorf("failed to insert share ownership for owner %d: %w", ownerships[i].OwnerID, err)
		}
	}
	return results.Close()
}

func (r *PgxShareOwnershipRepository) CreateShareOwnerships(ctx context.Context, ownerships []domain.ShareOwnership, recap domain.ExtraSharesAccountingRecap, logEntry domain.LogEntry) ([]domain.ShareOwnership, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := insertShareOwnershipsTx(ctx, tx, ownerships); err != nil {
		return nil, err
	}

	mr := mapping.ToModelExtraSharesRecap(recap)
	_, err = tx.Exec(ctx,
		`INSERT INTO extra_shares_accounting_recaps (member_id, number_of_shares, date) VALUES ($1, $2, $3);`,
		mr.MemberID, mr.NumberOfShares, mr.Date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert accounting recap for member %d: %w", mr.MemberID, err)
	}

	if err := insertLogEntryTx(ctx, tx, logEntry); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return ownerships, nil
}

func (r *PgxShareOwnershipRepository) UpdateShareOwnership(ctx context.Context, ownership domain.ShareOwnership, logEntry *domain.LogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelShareOwnership(ownership)
	query := `
		UPDATE share_ownerships SET
			amount_paid = $2,
			start_date = $3,
			end_date = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ID,
		m.AmountPaid,
		m.StartDate,
		m.EndDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update share ownership %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if logEntry != nil {
		if err := insertLogEntryTx(ctx, tx, *logEntry); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxShareOwnershipRepository) DeleteShareOwnership(ctx context.Context, ownershipID int64, logEntry domain.LogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM share_ownerships WHERE id = $1;`, ownershipID)
	if err != nil {
		return fmt.Errorf("failed to delete share ownership %d: %w", ownershipID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertLogEntryTx(ctx, tx, logEntry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
