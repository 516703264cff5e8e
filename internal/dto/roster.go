package dto

// RosterFilterParams are the query parameters of the member roster. Every
// field is optional; an absent field contributes no predicate. Pointers
// differentiate "not filtered" from filtering on false.
type RosterFilterParams struct {
	Status                         string `form:"status"`
	Search                         string `form:"search"`
	AttendedWelcomeSession         *bool  `form:"attended_welcome_session"`
	Ratenzahlung                   *bool  `form:"ratenzahlung"`
	IsCompany                      *bool  `form:"is_company"`
	PaidMembershipFee              *bool  `form:"paid_membership_fee"`
	HasAccount                     *bool  `form:"has_account"`
	HasUnpaidShares                *bool  `form:"has_unpaid_shares"`
	IsFullyPaid                    *bool  `form:"is_fully_paid"`
	HasCapability                  string `form:"has_capability"`
	NotHasCapability               string `form:"not_has_capability"`
	RegisteredToSlotWithCapability string `form:"registered_to_slot_with_capability"`
	ShiftAttendanceMode            string `form:"shift_attendance_mode"`
	ABCDWeek                       string `form:"abcd_week"`

	// AsOf is the reference date for status derivation (YYYY-MM-DD),
	// defaulting to today.
	AsOf string `form:"as_of"`
}

// RosterResponse is the filtered roster plus its counts.
type RosterResponse struct {
	FilteredCount int                  `json:"filteredCount"`
	TotalCount    int                  `json:"totalCount"`
	Members       []ShareOwnerResponse `json:"members"`
}
