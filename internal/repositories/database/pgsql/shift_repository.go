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

// PgxShiftDataRepository reads the tables owned by the shift-scheduling
// subsystem. It never writes them.
type PgxShiftDataRepository struct {
	db *pgxpool.Pool
}

func newPgxShiftDataRepository(db *pgxpool.Pool) portsrepo.ShiftDataReader {
	return &PgxShiftDataRepository{db: db}
}

var _ portsrepo.ShiftDataReader = (*PgxShiftDataRepository)(nil)

func (r *PgxShiftDataRepository) queryUserIDSet(ctx context.Context, query string, args ...any) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift user IDs: %w", err)
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan shift user ID: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift user IDs: %w", err)
	}
	return ids, nil
}

func (r *PgxShiftDataRepository) FindUserIDsWithCapability(ctx context.Context, capability string) (map[string]bool, error) {
	return r.queryUserIDSet(ctx,
		`SELECT user_id FROM shift_user_data WHERE $1 = ANY(capabilities);`,
		capability,
	)
}

func (r *PgxShiftDataRepository) FindUserIDsRegisteredToSlotWithCapability(ctx context.Context, capability string) (map[string]bool, error) {
	return r.queryUserIDSet(ctx, `
		SELECT DISTINCT a.user_id
		FROM shift_attendance_templates a
		JOIN shift_slot_templates s ON s.id = a.slot_template_id
		WHERE $1 = ANY(s.required_capabilities);
	`, capability)
}

func (r *PgxShiftDataRepository) FindUserIDsWithAttendanceMode(ctx context.Context, mode domain.ShiftAttendanceMode) (map[string]bool, error) {
	return r.queryUserIDSet(ctx,
		`SELECT user_id FROM shift_user_data WHERE attendance_mode = $1;`,
		string(mode),
	)
}

func (r *PgxShiftDataRepository) FindUserIDsInABCDWeek(ctx context.Context, week string) (map[string]bool, error) {
	return r.queryUserIDSet(ctx, `
		SELECT DISTINCT a.user_id
		FROM shift_attendance_templates a
		JOIN shift_slot_templates s ON s.id = a.slot_template_id
		WHERE s.week_group = $1;
	`, week)
}

func (r *PgxShiftDataRepository) FindShiftUserData(ctx context.Context, userID string) (*domain.ShiftUserData, error) {
	query := `
		SELECT d.user_id, d.attendance_mode, d.capabilities, d.balance_ok, d.exempted_from_shifts,
		       EXISTS (SELECT 1 FROM shift_attendance_templates a WHERE a.user_id = d.user_id) AS has_attendance_template
		FROM shift_user_data d
		WHERE d.user_id = $1;
	`
	var m models.ShiftUserData
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.AttendanceMode,
		&m.Capabilities,
		&m.BalanceOK,
		&m.ExemptedFromShifts,
		&m.HasAttendanceTemplate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find shift data for user %s: %w", userID, err)
	}
	data := mapping.ToDomainShiftUserData(m)
	return &data, nil
}
