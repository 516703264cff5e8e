package mapping

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToDomainShiftUserData converts a model ShiftUserData to its domain form.
func ToDomainShiftUserData(m models.ShiftUserData) domain.ShiftUserData {
	return domain.ShiftUserData{
		UserID:                m.UserID,
		AttendanceMode:        domain.ShiftAttendanceMode(m.AttendanceMode),
		Capabilities:          m.Capabilities,
		BalanceOK:             m.BalanceOK,
		ExemptedFromShifts:    m.ExemptedFromShifts,
		HasAttendanceTemplate: m.HasAttendanceTemplate,
	}
}
