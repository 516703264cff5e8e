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

type PgxShareOwnerRepository struct {
	BaseRepository
}

func newPgxShareOwnerRepository(pool *pgxpool.Pool) portsrepo.ShareOwnerRepositoryFacade {
	return &PgxShareOwnerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShareOwnerRepositoryFacade = (*PgxShareOwnerRepository)(nil)

const shareOwnerColumns = `id, is_company, company_name, first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, is_investing, attended_welcome_session, ratenzahlung, paid_membership_fee, willing_to_gift_a_share, user_id, created_at, created_by, last_updated_at, last_updated_by`

func scanShareOwnerRow(row pgx.Row) (*models.ShareOwner, error) {
	var m models.ShareOwner
	err := row.Scan(
		&m.ID,
		&m.IsCompany,
		&m.CompanyName,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&m.Street,
		&m.Postcode,
		&m.City,
		&m.Country,
		&m.PreferredLanguage,
		&m.IsInvesting,
		&m.AttendedWelcomeSession,
		&m.Ratenzahlung,
		&m.PaidMembershipFee,
		&m.WillingToGiftAShare,
		&m.UserID,
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

func (r *PgxShareOwnerRepository) FindShareOwnerByID(ctx context.Context, ownerID int64) (*domain.ShareOwner, error) {
	query := `SELECT ` + shareOwnerColumns + ` FROM share_owners WHERE id = $1;`
	m, err := scanShareOwnerRow(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find share owner %d: %w", ownerID, err)
	}

	owner := mapping.ToDomainShareOwner(*m)
	if err := r.attachOwnerships(ctx, []*domain.ShareOwner{&owner}); err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, []*domain.ShareOwner{&owner}); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *PgxShareOwnerRepository) FindShareOwners(ctx context.Context) ([]domain.ShareOwner, error) {
	query := `SELECT ` + shareOwnerColumns + ` FROM share_owners ORDER BY id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query share owners: %w", err)
	}
	defer rows.Close()

	owners := []domain.ShareOwner{}
	for rows.Next() {
		m, err := scanShareOwnerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share owner row: %w", err)
		}
		owners = append(owners, mapping.ToDomainShareOwner(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share owner rows: %w", err)
	}

	refs := make([]*domain.ShareOwner, len(owners))
	for i := range owners {
		refs[i] = &owners[i]
	}
	if err := r.attachOwnerships(ctx, refs); err != nil {
		return nil, err
	}
	if err := r.attachUsers(ctx, refs); err != nil {
		return nil, err
	}
	return owners, nil
}

// attachOwnerships prefetches the ownership lists of the given owners in one
// query, so roster-wide status derivation stays at a fixed number of round
// trips.
func (r *PgxShareOwnerRepository) attachOwnerships(ctx context.Context, owners []*domain.ShareOwner) error {
	if len(owners) == 0 {
		return nil
	}
	ids := make([]int64, len(owners))
	byID := make(map[int64]*domain.ShareOwner, len(owners))
	for i, o := range owners {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	query := `
		SELECT id, owner_id, amount_paid, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by
		FROM share_ownerships
		WHERE owner_id = ANY($1)
		ORDER BY start_date, id;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query share ownerships: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.ShareOwnership
		if err := rows.Scan(
			&m.ID,
			&m.OwnerID,
			&m.AmountPaid,
			&m.StartDate,
			&m.EndDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return fmt.Errorf("failed to scan share ownership row: %w", err)
		}
		if owner, ok := byID[m.OwnerID]; ok {
			owner.ShareOwnerships = append(owner.ShareOwnerships, mapping.ToDomainShareOwnership(m))
		}
	}
	return rows.Err()
}

// attachUsers prefetches the linked login accounts of the given owners.
func (r *PgxShareOwnerRepository) attachUsers(ctx context.Context, owners []*domain.ShareOwner) error {
	userIDs := []string{}
	byUserID := map[string][]*domain.ShareOwner{}
	for _, o := range owners {
		if o.UserID == nil {
			continue
		}
		if _, seen := byUserID[*o.UserID]; !seen {
			userIDs = append(userIDs, *o.UserID)
		}
		byUserID[*o.UserID] = append(byUserID[*o.UserID], o)
	}
	if len(userIDs) == 0 {
		return nil
	}

	query := `SELECT ` + tapirUserColumns + ` FROM tapir_users WHERE user_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return fmt.Errorf("failed to query linked users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanTapirUser(rows)
		if err != nil {
			return fmt.Errorf("failed to scan linked user row: %w", err)
		}
		user := mapping.ToDomainTapirUser(*m)
		for _, owner := range byUserID[user.UserID] {
			u := user
			owner.User = &u
		}
	}
	return rows.Err()
}

func (r *PgxShareOwnerRepository) CountShareOwners(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM share_owners;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count share owners: %w", err)
	}
	return count, nil
}

func (r *PgxShareOwnerRepository) SaveShareOwner(ctx context.Context, owner domain.ShareOwner) (*domain.ShareOwner, error) {
	m := mapping.ToModelShareOwner(owner)
	query := `
		INSERT INTO share_owners (is_company, company_name, first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, is_investing, attended_welcome_session, ratenzahlung, paid_membership_fee, willing_to_gift_a_share, user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
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
		return nil, fmt.Errorf("failed to save share owner: %w", err)
	}
	return &owner, nil
}

// updateShareOwnerTx runs the UPDATE within the caller's transaction.
func updateShareOwnerTx(ctx context.Context, tx pgx.Tx, m models.ShareOwner) error {
	query := `
		UPDATE share_owners SET
			is_company = $2,
			company_name = $3,
			first_name = $4,
			last_name = $5,
			email = $6,
			phone_number = $7,
			street = $8,
			postcode = $9,
			city = $10,
			country = $11,
			preferred_language = $12,
			is_investing = $13,
			attended_welcome_session = $14,
			ratenzahlung = $15,
			paid_membership_fee = $16,
			willing_to_gift_a_share = $17,
			user_id = $18,
			last_updated_at = $19,
			last_updated_by = $20
		WHERE id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.ID,
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
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update share owner %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxShareOwnerRepository) UpdateShareOwner(ctx context.Context, owner domain.ShareOwner, logEntry *domain.LogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := updateShareOwnerTx(ctx, tx, mapping.ToModelShareOwner(owner)); err != nil {
		return err
	}
	if logEntry != nil {
		if err := insertLogEntryTx(ctx, tx, *logEntry); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func (r *PgxShareOwnerRepository) LinkTapirUser(ctx context.Context, owner domain.ShareOwner, user domain.TapirUser, logEntry domain.LogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mu := mapping.ToModelTapirUser(user)
	userQuery := `
		INSERT INTO tapir_users (` + tapirUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, userQuery,
		mu.UserID,
		mu.Username,
		mu.PasswordHash,
		mu.FirstName,
		mu.LastName,
		mu.Email,
		mu.PhoneNumber,
		mu.Street,
		mu.Postcode,
		mu.City,
		mu.Country,
		mu.PreferredLanguage,
		mu.Permissions,
		mu.CreatedAt,
		mu.CreatedBy,
		mu.LastUpdatedAt,
		mu.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create login account: %w", err)
	}

	owner.UserID = &user.UserID
	owner.BlankInfoFields()
	if err := updateShareOwnerTx(ctx, tx, mapping.ToModelShareOwner(owner)); err != nil {
		return err
	}

	// Past audit entries follow the member onto the new account.
	_, err = tx.Exec(ctx,
		`UPDATE log_entries SET user_id = $1 WHERE share_owner_id = $2 AND user_id IS NULL;`,
		user.UserID, owner.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to re-attribute log entries to user %s: %w", user.UserID, err)
	}

	if err := insertLogEntryTx(ctx, tx, logEntry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
