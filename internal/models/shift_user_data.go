package models

// ShiftUserData represents the per-account shift state row owned by the
// shift-scheduling subsystem. This backend only reads it.
type ShiftUserData struct {
	UserID                string   `json:"userID" db:"user_id"`
	AttendanceMode        string   `json:"attendanceMode" db:"attendance_mode"`
	Capabilities          []string `json:"capabilities" db:"capabilities"`
	BalanceOK             bool     `json:"balanceOK" db:"balance_ok"`
	ExemptedFromShifts    bool     `json:"exemptedFromShifts" db:"exempted_from_shifts"`
	HasAttendanceTemplate bool     `json:"hasAttendanceTemplate" db:"has_attendance_template"`
}
