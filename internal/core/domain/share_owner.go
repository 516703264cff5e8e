package domain

import (
	"strings"
	"time"
)

// IdentitySource says which record currently holds a member's identity
// fields. Exactly one source is authoritative at any time: the owner record
// itself before an account exists, the linked TapirUser afterwards.
type IdentitySource string

const (
	IdentityFromOwner   IdentitySource = "owner"
	IdentityFromAccount IdentitySource = "account"
)

// MemberInfo is the resolved identity of a share owner, independent of where
// the fields are stored.
type MemberInfo struct {
	Source            IdentitySource `json:"source"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	CompanyName       string         `json:"companyName,omitempty"`
	Email             string         `json:"email"`
	PhoneNumber       string         `json:"phoneNumber"`
	Street            string         `json:"street"`
	Postcode          string         `json:"postcode"`
	City              string         `json:"city"`
	Country           string         `json:"country"`
	PreferredLanguage string         `json:"preferredLanguage"`
}

// DisplayName is the member's human-readable name: company name for company
// members, "First Last" otherwise.
func (i MemberInfo) DisplayName() string {
	if i.CompanyName != "" {
		return i.CompanyName
	}
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// ShareOwner represents a person or company holding cooperative equity.
type ShareOwner struct {
	ID          int64  `json:"id"` // Member number, sequential
	IsCompany   bool   `json:"isCompany"`
	CompanyName string `json:"companyName,omitempty"`

	// Identity fields, authoritative only while User is nil. Granting an
	// account copies them onto the TapirUser and blanks them here.
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Email             string `json:"email,omitempty"`
	PhoneNumber       string `json:"phoneNumber,omitempty"`
	Street            string `json:"street,omitempty"`
	Postcode          string `json:"postcode,omitempty"`
	City              string `json:"city,omitempty"`
	Country           string `json:"country,omitempty"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`

	IsInvesting            bool       `json:"isInvesting"`
	AttendedWelcomeSession bool       `json:"attendedWelcomeSession"`
	Ratenzahlung           bool       `json:"ratenzahlung"` // Installment payment plan
	PaidMembershipFee      bool       `json:"paidMembershipFee"`
	WillingToGiftAShare    *time.Time `json:"willingToGiftAShare,omitempty"`

	UserID *string    `json:"userID,omitempty"`
	User   *TapirUser `json:"-"`

	ShareOwnerships []ShareOwnership `json:"shareOwnerships,omitempty"`
	AuditFields
}

// HasAccount reports whether the owner is linked to a login account.
func (o ShareOwner) HasAccount() bool {
	return o.UserID != nil
}

// Info resolves the authoritative identity fields for the owner.
func (o ShareOwner) Info() MemberInfo {
	if o.User != nil {
		return MemberInfo{
			Source:            IdentityFromAccount,
			FirstName:         o.User.FirstName,
			LastName:          o.User.LastName,
			Email:             o.User.Email,
			PhoneNumber:       o.User.PhoneNumber,
			Street:            o.User.Street,
			Postcode:          o.User.Postcode,
			City:              o.User.City,
			Country:           o.User.Country,
			PreferredLanguage: o.User.PreferredLanguage,
		}
	}
	return MemberInfo{
		Source:            IdentityFromOwner,
		FirstName:         o.FirstName,
		LastName:          o.LastName,
		CompanyName:       o.CompanyName,
		Email:             o.Email,
		PhoneNumber:       o.PhoneNumber,
		Street:            o.Street,
		Postcode:          o.Postcode,
		City:              o.City,
		Country:           o.Country,
		PreferredLanguage: o.PreferredLanguage,
	}
}

// BlankInfoFields clears the owner-side identity copies. Must be called when
// linking a TapirUser so there is never a second source of truth.
func (o *ShareOwner) BlankInfoFields() {
	o.FirstName = ""
	o.LastName = ""
	o.Email = ""
	o.PhoneNumber = ""
	o.Street = ""
	o.Postcode = ""
	o.City = ""
	o.Country = ""
	o.PreferredLanguage = ""
}

// NumActiveShares counts the ownerships active as of the given date.
func (o ShareOwner) NumActiveShares(at time.Time) int {
	count := 0
	for _, s := range o.ShareOwnerships {
		if s.IsActiveAt(at) {
			count++
		}
	}
	return count
}

// OldestActiveOwnership returns the active ownership with the earliest start
// date, or nil if none is active. Its start date is the member's join date.
func (o ShareOwner) OldestActiveOwnership(at time.Time) *ShareOwnership {
	var oldest *ShareOwnership
	for i := range o.ShareOwnerships {
		s := &o.ShareOwnerships[i]
		if !s.IsActiveAt(at) {
			continue
		}
		if oldest == nil || s.StartDate.Before(oldest.StartDate) {
			oldest = s
		}
	}
	return oldest
}

// CanShop reports whether the member may shop as of the given date: holding
// at least one active share and not being a pure investing member.
func (o ShareOwner) CanShop(at time.Time) bool {
	return !o.IsInvesting && o.NumActiveShares(at) > 0
}
