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

type PgxTapirUserRepository struct {
	db *pgxpool.Pool
}

func newPgxTapirUserRepository(db *pgxpool.Pool) portsrepo.TapirUserRepositoryFacade {
	return &PgxTapirUserRepository{db: db}
}

var _ portsrepo.TapirUserRepositoryFacade = (*PgxTapirUserRepository)(nil)

const tapirUserColumns = `user_id, username, password_hash, first_name, last_name, email, phone_number, street, postcode, city, country, preferred_language, permissions, created_at, created_by, last_updated_at, last_updated_by`

func scanTapirUser(row pgx.Row) (*models.TapirUser, error) {
	var m models.TapirUser
	err := row.Scan(
		&m.UserID,
		&m.Username,
		&m.PasswordHash,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.PhoneNumber,
		&m.Street,
		&m.Postcode,
		&m.City,
		&m.Country,
		&m.PreferredLanguage,
		&m.Permissions,
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

func (r *PgxTapirUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.TapirUser, error) {
	query := `SELECT ` + tapirUserColumns + ` FROM tapir_users WHERE user_id = $1;`
	m, err := scanTapirUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	user := mapping.ToDomainTapirUser(*m)
	return &user, nil
}

func (r *PgxTapirUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.TapirUser, error) {
	query := `SELECT ` + tapirUserColumns + ` FROM tapir_users WHERE username = $1;`
	m, err := scanTapirUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}
	user := mapping.ToDomainTapirUser(*m)
	return &user, nil
}

func (r *PgxTapirUserRepository) SaveUser(ctx context.Context, user domain.TapirUser) error {
	m := mapping.ToModelTapirUser(user)
	query := `
		INSERT INTO tapir_users (` + tapirUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			password_hash = EXCLUDED.password_hash,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number,
			street = EXCLUDED.street,
			postcode = EXCLUDED.postcode,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			preferred_language = EXCLUDED.preferred_language,
			permissions = EXCLUDED.permissions,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Username,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PhoneNumber,
		m.Street,
		m.Postcode,
		m.City,
		m.Country,
		m.PreferredLanguage,
		m.Permissions,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}
