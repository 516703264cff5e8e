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

type PgxDraftUserRepository struct {
	BaseRepository
}

func newPgxDraftUserRepository(pool *pgxpool.Pool) portsrepo.DraftUserRepositoryFacade {
	return &PgxDraftUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DraftUserRepositoryFacade = (*PgxDraftUserRepository)(nil)

const draftUserColumns = `id, first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, num_shares, is_investing, ratenzahlung, signed_membership_agreement, attended_welcome_session, paid_membership_fee, created_at, created_by, last_updated_at, last_updated_by`

func scanDraftUser(row pgx.Row) (*models.DraftUser, error) {
	var m models.DraftUser
	err := row.Scan(
		&m.ID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&m.Street,
		&m.Postcode,
		&m.City,
		&m.Country,
		&m.PreferredLanguage,
		&m.NumShares,
		&m.IsInvesting,
		&m.Ratenzahlung,
		&m.SignedMembershipAgreement,
		&m.AttendedWelcomeSession,
		&m.PaidMembershipFee,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxDraftUserRepository) FindDraftUserByID(ctx context.Context, draftID int64) (*domain.DraftUser, error) {
	query := `SELECT ` + draftUserColumns + ` FROM draft_users WHERE id = $1;`
	m, err := scanDraftUser(r.Pool.QueryRow(ctx, query, draftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find draft user %d: %w", draftID, err)
	}
	draft := mapping.ToDomainDraftUser(*m)
	return &draft, nil
}

func (r *PgxDraftUserRepository) FindDraftUsers(ctx context.Context) ([]domain.DraftUser, error) {
	query := `SELECT ` + draftUserColumns + ` FROM draft_users ORDER BY created_at DESC, id DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft users: %w", err)
	}
	defer rows.Close()

	drafts := []domain.DraftUser{}
	for rows.Next() {
		m, err := scanDraftUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft user row: %w", err)
		}
		drafts = append(drafts, mapping.ToDomainDraftUser(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft user rows: %w", err)
	}
	return drafts, nil
}

func (r *PgxDraftUserRepository) SaveDraftUser(ctx context.Context, draft domain.DraftUser) (*domain.DraftUser, error) {
	m := mapping.ToModelDraftUser(draft)
	query := `
		INSERT INTO draft_users (first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, num_shares, is_investing, ratenzahlung, signed_membership_agreement, attended_welcome_session, paid_membership_fee, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Street,
		m.Postcode,
		m.City,
		m.Country,
		m.PreferredLanguage,
		m.NumShares,
		m.IsInvesting,
		m.Ratenzahlung,
		m.SignedMembershipAgreement,
		m.AttendedWelcomeSession,
		m.PaidMembershipFee,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&draft.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save draft user: %w", err)
	}
	return &draft, nil
}

func (r *PgxDraftUserRepository) UpdateDraftUser(ctx context.Context, draft domain.DraftUser, logEntry *domain.LogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDraftUser(draft)
	query := `
		UPDATE draft_users SET
			first_name = $2,
			last_name = $3,
			email = $4,
			phone_number = $5,
			street = $6,
			postcode = $7,
			city = $8,
			country = $9,
			preferred_language = $10,
			num_shares = $11,
			is_investing = $12,
			ratenzahlung = $13,
			signed_membership_agreement = $14,
			attended_welcome_session = $15,
			paid_membership_fee = $16,
			last_updated_at = $17,
			last_updated_by = $18
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Street,
		m.Postcode,
		m.City,
		m.Country,
		m.PreferredLanguage,
		m.NumShares,
		m.IsInvesting,
		m.Ratenzahlung,
		m.SignedMembershipAgreement,
		m.AttendedWelcomeSession,
		m.PaidMembershipFee,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update draft user %d: %w", m.ID, err)
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

func (r *PgxDraftUserRepository) DeleteDraftUser(ctx context.Context, draftID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM draft_users WHERE id = $1;`, draftID)
	if err != nil {
		return fmt.Errorf("failed to delete draft user %d: %w", draftID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDraftUserRepository) ConvertDraftUser(ctx context.Context, draftID int64, owner domain.ShareOwner, ownerships []domain.ShareOwnership, logEntry domain.LogEntry) (*domain.ShareOwner, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelShareOwner(owner)
	ownerQuery := `
		INSERT INTO share_owners (is_company, company_name, first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, is_investing, attended_welcome_session, ratenzahlung, paid_membership_fee, willing_to_gift_a_share, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, ownerQuery,
		m.IsCompany,
		m.CompanyName,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Street,
		m.Postcode,
		m.City,
		m.Country,
		m.PreferredLanguage,
		m.IsInvesting,
		m.AttendedWelcomeSession,
		m.Ratenzahlung,
		m.PaidMembershipFee,
		m.WillingToGiftAShare,
		m.UserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create share owner from draft %d: %w", draftID, err)
	}

	for i := range ownerships {
		ownerships[i].OwnerID = owner.ID
	}
	if err := insertShareOwnershipsTx(ctx, tx, ownerships); err != nil {
		return nil, err
	}
	owner.ShareOwnerships = ownerships

	tag, err := tx.Exec(ctx, `DELETE FROM draft_users WHERE id = $1;`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete converted draft user %d: %w", draftID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	logEntry.ShareOwnerID = &owner.ID
	if err := insertLogEntryTx(ctx, tx, logEntry); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &owner, nil
}
