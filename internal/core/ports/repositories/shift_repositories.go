package repositories

import (
	"context"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// ShiftDataReader is the read-only view of the shift-scheduling subsystem
// this service consumes. The roster filters work on account-ID sets so the
// predicates themselves stay pure.
type ShiftDataReader interface {
	// FindUserIDsWithCapability returns the accounts holding a qualification.
	FindUserIDsWithCapability(ctx context.Context, capability string) (map[string]bool, error)

	// FindUserIDsRegisteredToSlotWithCapability returns the accounts
	// registered to a shift slot requiring the qualification.
	FindUserIDsRegisteredToSlotWithCapability(ctx context.Context, capability string) (map[string]bool, error)

	// FindUserIDsWithAttendanceMode returns the accounts attending shifts in
	// the given mode.
	FindUserIDsWithAttendanceMode(ctx context.Context, mode domain.ShiftAttendanceMode) (map[string]bool, error)

	// FindUserIDsInABCDWeek returns the accounts whose attendance template
	// belongs to the given ABCD week group.
	FindUserIDsInABCDWeek(ctx context.Context, week string) (map[string]bool, error)

	// FindShiftUserData returns the per-account shift state consulted by the
	// welcome desk.
	FindShiftUserData(ctx context.Context, userID string) (*domain.ShiftUserData, error)
}
