package models

// DraftUser represents a membership application row. The row is deleted in
// the same transaction that creates the ShareOwner it converts into.
type DraftUser struct {
	ID                int64  `json:"id" db:"id"`
	FirstName         string `json:"firstName" db:"first_name"`
	LastName          string `json:"lastName" db:"last_name"`
	Email             string `json:"email" db:"email"`
	PhoneNumber       string `json:"phoneNumber" db:"phone_number"`
	Street            string `json:"street" db:"street"`
	Postcode          string `json:"postcode" db:"postcode"`
	City              string `json:"city" db:"city"`
	Country           string `json:"country" db:"country"`
	PreferredLanguage string `json:"preferredLanguage" db:"preferred_language"`

	NumShares    int  `json:"numShares" db:"num_shares"`
	IsInvesting  bool `json:"isInvesting" db:"is_investing"`
	Ratenzahlung bool `json:"ratenzahlung" db:"ratenzahlung"`

	SignedMembershipAgreement bool `json:"signedMembershipAgreement" db:"signed_membership_agreement"`
	AttendedWelcomeSession    bool `json:"attendedWelcomeSession" db:"attended_welcome_session"`
	PaidMembershipFee         bool `json:"paidMembershipFee" db:"paid_membership_fee"`

	AuditFields
}
