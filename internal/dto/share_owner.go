package dto

import (
	"time"

	"github.com/hoelscher-berlin/tapir/internal/core/domain"
)

// ShareOwnerResponse is the API representation of a member, with the status
// derived as of the request's reference date and the identity fields taken
// from whichever source is authoritative.
type ShareOwnerResponse struct {
	ID                     int64   `json:"id"`
	DisplayName            string  `json:"displayName"`
	FirstName              string  `json:"firstName"`
	LastName               string  `json:"lastName"`
	CompanyName            string  `json:"companyName,omitempty"`
	Email                  string  `json:"email"`
	PhoneNumber            string  `json:"phoneNumber"`
	Street                 string  `json:"street"`
	Postcode               string  `json:"postcode"`
	City                   string  `json:"city"`
	Country                string  `json:"country"`
	PreferredLanguage      string  `json:"preferredLanguage"`
	Status                 string  `json:"status"`
	NumShares              int     `json:"numShares"`
	JoinDate               *string `json:"joinDate,omitempty"`
	IsCompany              bool    `json:"isCompany"`
	IsInvesting            bool    `json:"isInvesting"`
	AttendedWelcomeSession bool    `json:"attendedWelcomeSession"`
	Ratenzahlung           bool    `json:"ratenzahlung"`
	PaidMembershipFee      bool    `json:"paidMembershipFee"`
	HasAccount             bool    `json:"hasAccount"`
	WillingToGiftAShare    *string `json:"willingToGiftAShare,omitempty"`

	ShareOwnerships []ShareOwnershipResponse `json:"shareOwnerships,omitempty"`
}

// ToShareOwnerResponse converts a domain owner for the given reference date.
func ToShareOwnerResponse(owner *domain.ShareOwner, at time.Time) ShareOwnerResponse {
	info := owner.Info()
	resp := ShareOwnerResponse{
		ID:                     owner.ID,
		DisplayName:            info.DisplayName(),
		FirstName:              info.FirstName,
		LastName:               info.LastName,
		CompanyName:            owner.CompanyName,
		Email:                  info.Email,
		PhoneNumber:            info.PhoneNumber,
		Street:                 info.Street,
		Postcode:               info.Postcode,
		City:                   info.City,
		Country:                info.Country,
		PreferredLanguage:      info.PreferredLanguage,
		Status:                 string(domain.MemberStatusAt(*owner, at)),
		NumShares:              owner.NumActiveShares(at),
		IsCompany:              owner.IsCompany,
		IsInvesting:            owner.IsInvesting,
		AttendedWelcomeSession: owner.AttendedWelcomeSession,
		Ratenzahlung:           owner.Ratenzahlung,
		PaidMembershipFee:      owner.PaidMembershipFee,
		HasAccount:             owner.HasAccount(),
	}
	if oldest := owner.OldestActiveOwnership(at); oldest != nil {
		joinDate := oldest.StartDate.Format("2006-01-02")
		resp.JoinDate = &joinDate
	}
	if owner.WillingToGiftAShare != nil {
		willing := owner.WillingToGiftAShare.Format("2006-01-02")
		resp.WillingToGiftAShare = &willing
	}
	for _, s := range owner.ShareOwnerships {
		resp.ShareOwnerships = append(resp.ShareOwnerships, ToShareOwnershipResponse(&s))
	}
	return resp
}

// UpdateShareOwnerRequest defines the data allowed for updating a member.
// Pointers differentiate omitted fields from zero values.
type UpdateShareOwnerRequest struct {
	FirstName           *string `json:"firstName"`
	LastName            *string `json:"lastName"`
	CompanyName         *string `json:"companyName"`
	Email               *string `json:"email"`
	PhoneNumber         *string `json:"phoneNumber"`
	Street              *string `json:"street"`
	Postcode            *string `json:"postcode"`
	City                *string `json:"city"`
	Country             *string `json:"country"`
	PreferredLanguage   *string `json:"preferredLanguage"`
	IsInvesting         *bool   `json:"isInvesting"`
	Ratenzahlung        *bool   `json:"ratenzahlung"`
	PaidMembershipFee   *bool   `json:"paidMembershipFee"`
	WillingToGiftAShare *string `json:"willingToGiftAShare" binding:"omitempty,dateonly"` // YYYY-MM-DD, empty string clears
}

// GrantAccountRequest carries the login details for a new member account.
// Identity fields default to the owner's current info when omitted. The
// password is a temporary one handed to the member by the office.
type GrantAccountRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TapirUserResponse is the API representation of a login account.
type TapirUserResponse struct {
	UserID    string `json:"userID"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ToTapirUserResponse converts a domain account.
func ToTapirUserResponse(user *domain.TapirUser) TapirUserResponse {
	return TapirUserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// WelcomeDeskMemberResponse backs the welcome desk detail view.
type WelcomeDeskMemberResponse struct {
	ID                  int64  `json:"id"`
	DisplayName         string `json:"displayName"`
	CanShop             bool   `json:"canShop"`
	MissingAccount      bool   `json:"missingAccount"`
	ShiftBalanceNotOK   bool   `json:"shiftBalanceNotOK"`
	MustRegisterToShift bool   `json:"mustRegisterToShift"`
}

// MailchimpContact is one row of the mailing-list export.
type MailchimpContact struct {
	Email     string
	FirstName string
	LastName  string
	Address   string
	Tag       string
}
