package models

import "time"

// ShareOwner represents a member row. The identity columns are blanked once
// a login account is linked; user_id is the nullable foreign key to it.
type ShareOwner struct {
	ID          int64  `json:"id" db:"id"`
	IsCompany   bool   `json:"isCompany" db:"is_company"`
	CompanyName string `json:"companyName" db:"company_name"`

	FirstName         string `json:"firstName" db:"first_name"`
	LastName          string `json:"lastName" db:"last_name"`
	Email             string `json:"email" db:"email"`
	PhoneNumber       string `json:"phoneNumber" db:"phone_number"`
	Street            string `json:"street" db:"street"`
	Postcode          string `json:"postcode" db:"postcode"`
	City              string `json:"city" db:"city"`
	Country           string `json:"country" db:"country"`
	PreferredLanguage string `json:"preferredLanguage" db:"preferred_language"`

	IsInvesting            bool       `json:"isInvesting" db:"is_investing"`
	AttendedWelcomeSession bool       `json:"attendedWelcomeSession" db:"attended_welcome_session"`
	Ratenzahlung           bool       `json:"ratenzahlung" db:"ratenzahlung"`
	PaidMembershipFee      bool       `json:"paidMembershipFee" db:"paid_membership_fee"`
	WillingToGiftAShare    *time.Time `json:"willingToGiftAShare" db:"willing_to_gift_a_share"`

	UserID *string `json:"userID" db:"user_id"`
	AuditFields
}
