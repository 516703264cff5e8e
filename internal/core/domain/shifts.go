package domain

// The shift-scheduling subsystem owns shift data; this package only models
// the read-only touch points the member roster needs.

// ShiftAttendanceMode says how a working member attends shifts.
type ShiftAttendanceMode string

const (
	ShiftAttendanceModeRegular ShiftAttendanceMode = "regular"
	ShiftAttendanceModeFlying  ShiftAttendanceMode = "flying"
)

// ShiftAttendanceModes lists the modes, for filter choices.
var ShiftAttendanceModes = []ShiftAttendanceMode{ShiftAttendanceModeRegular, ShiftAttendanceModeFlying}

// Shift capabilities (qualifications) a member can hold.
const (
	ShiftCapabilityShiftCoordinator = "shift_coordinator"
	ShiftCapabilityCashier          = "cashier"
	ShiftCapabilityMemberOffice     = "member_office"
	ShiftCapabilityBreadDelivery    = "bread_delivery"
	ShiftCapabilityRedCard          = "red_card"
	ShiftCapabilityFirstAid         = "first_aid"
)

// ShiftCapabilities lists the known capabilities, for filter choices.
var ShiftCapabilities = []string{
	ShiftCapabilityShiftCoordinator,
	ShiftCapabilityCashier,
	ShiftCapabilityMemberOffice,
	ShiftCapabilityBreadDelivery,
	ShiftCapabilityRedCard,
	ShiftCapabilityFirstAid,
}

// ShiftUserData is the per-account shift state consulted by the welcome desk.
type ShiftUserData struct {
	UserID                string              `json:"userID"`
	AttendanceMode        ShiftAttendanceMode `json:"attendanceMode"`
	Capabilities          []string            `json:"capabilities"`
	BalanceOK             bool                `json:"balanceOK"`
	ExemptedFromShifts    bool                `json:"exemptedFromShifts"`
	HasAttendanceTemplate bool                `json:"hasAttendanceTemplate"`
}

// MustRegisterToAShift reports whether the account still needs to pick a
// regular shift slot.
func (d ShiftUserData) MustRegisterToAShift() bool {
	return d.AttendanceMode == ShiftAttendanceModeRegular &&
		!d.HasAttendanceTemplate &&
		!d.ExemptedFromShifts
}
