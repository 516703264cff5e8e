package domain

// DraftUser is a prospective member before the share purchase is finalised
// and a ShareOwner record exists. The workflow flags are independent booleans
// that may be set in any order; conversion to a ShareOwner ends the draft.
type DraftUser struct {
	ID                int64  `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	Street            string `json:"street"`
	Postcode          string `json:"postcode"`
	City              string `json:"city"`
	Country           string `json:"country"`
	PreferredLanguage string `json:"preferredLanguage"`

	NumShares    int  `json:"numShares"`
	IsInvesting  bool `json:"isInvesting"`
	Ratenzahlung bool `json:"ratenzahlung"`

	SignedMembershipAgreement bool `json:"signedMembershipAgreement"`
	AttendedWelcomeSession    bool `json:"attendedWelcomeSession"`
	PaidMembershipFee         bool `json:"paidMembershipFee"`

	AuditFields
}

// CanBeConverted reports whether the draft has completed the steps required
// before a ShareOwner may be created from it.
func (d DraftUser) CanBeConverted() bool {
	return d.SignedMembershipAgreement && d.PaidMembershipFee && d.NumShares > 0
}
