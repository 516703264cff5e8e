package dto

import "github.com/hoelscher-berlin/tapir/internal/core/domain"

// CreateDraftUserRequest creates a prospective member from the member office.
type CreateDraftUserRequest struct {
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PhoneNumber       string `json:"phoneNumber"`
	Street            string `json:"street"`
	Postcode          string `json:"postcode"`
	City              string `json:"city"`
	Country           string `json:"country"`
	PreferredLanguage string `json:"preferredLanguage"`
	NumShares         int    `json:"numShares" binding:"required,min=1"`
	IsInvesting       bool   `json:"isInvesting"`
	Ratenzahlung      bool   `json:"ratenzahlung"`
}

// RegisterDraftUserRequest is the public self-registration payload. It is the
// office-side create minus the office-only flags.
type RegisterDraftUserRequest struct {
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PhoneNumber       string `json:"phoneNumber"`
	Street            string `json:"street"`
	Postcode          string `json:"postcode"`
	City              string `json:"city"`
	Country           string `json:"country"`
	PreferredLanguage string `json:"preferredLanguage"`
	NumShares         int    `json:"numShares" binding:"required,min=1"`
	IsInvesting       bool   `json:"isInvesting"`
}

// UpdateDraftUserRequest edits a draft; pointers differentiate omitted fields.
type UpdateDraftUserRequest struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	Email             *string `json:"email"`
	PhoneNumber       *string `json:"phoneNumber"`
	Street            *string `json:"street"`
	Postcode          *string `json:"postcode"`
	City              *string `json:"city"`
	Country           *string `json:"country"`
	PreferredLanguage *string `json:"preferredLanguage"`
	NumShares         *int    `json:"numShares"`
	IsInvesting       *bool   `json:"isInvesting"`
	Ratenzahlung      *bool   `json:"ratenzahlung"`
}

// DraftUserResponse is the API representation of a prospective member.
type DraftUserResponse struct {
	ID                        int64  `json:"id"`
	DisplayName               string `json:"displayName"`
	FirstName                 string `json:"firstName"`
	LastName                  string `json:"lastName"`
	Email                     string `json:"email"`
	PhoneNumber               string `json:"phoneNumber"`
	Street                    string `json:"street"`
	Postcode                  string `json:"postcode"`
	City                      string `json:"city"`
	Country                   string `json:"country"`
	PreferredLanguage         string `json:"preferredLanguage"`
	NumShares                 int    `json:"numShares"`
	IsInvesting               bool   `json:"isInvesting"`
	Ratenzahlung              bool   `json:"ratenzahlung"`
	SignedMembershipAgreement bool   `json:"signedMembershipAgreement"`
	AttendedWelcomeSession    bool   `json:"attendedWelcomeSession"`
	PaidMembershipFee         bool   `json:"paidMembershipFee"`
	CanBeConverted            bool   `json:"canBeConverted"`
}

// ToDraftUserResponse converts a domain draft user.
func ToDraftUserResponse(d *domain.DraftUser) DraftUserResponse {
	return DraftUserResponse{
		ID:                        d.ID,
		DisplayName:               d.FirstName + " " + d.LastName,
		FirstName:                 d.FirstName,
		LastName:                  d.LastName,
		Email:                     d.Email,
		PhoneNumber:               d.PhoneNumber,
		Street:                    d.Street,
		Postcode:                  d.Postcode,
		City:                      d.City,
		Country:                   d.Country,
		PreferredLanguage:         d.PreferredLanguage,
		NumShares:                 d.NumShares,
		IsInvesting:               d.IsInvesting,
		Ratenzahlung:              d.Ratenzahlung,
		SignedMembershipAgreement: d.SignedMembershipAgreement,
		AttendedWelcomeSession:    d.AttendedWelcomeSession,
		PaidMembershipFee:         d.PaidMembershipFee,
		CanBeConverted:            d.CanBeConverted(),
	}
}

// ToListDraftUsersResponse converts a slice of domain drafts.
func ToListDraftUsersResponse(drafts []domain.DraftUser) []DraftUserResponse {
	responses := make([]DraftUserResponse, len(drafts))
	for i := range drafts {
		responses[i] = ToDraftUserResponse(&drafts[i])
	}
	return responses
}
