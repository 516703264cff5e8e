package mapping

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToModelShareOwner converts a domain ShareOwner to a model ShareOwner.
// The linked user and the ownership slice are persisted separately.
func ToModelShareOwner(d domain.ShareOwner) models.ShareOwner {
	return models.ShareOwner{
		ID:                     d.ID,
		IsCompany:              d.IsCompany,
		CompanyName:            d.CompanyName,
		FirstName:              d.FirstName,
		LastName:               d.LastName,
		Email:                  d.Email,
		PhoneNumber:            d.PhoneNumber,
		Street:                 d.Street,
		Postcode:               d.Postcode,
		City:                   d.City,
		Country:                d.Country,
		PreferredLanguage:      d.PreferredLanguage,
		IsInvesting:            d.IsInvesting,
		AttendedWelcomeSession: d.AttendedWelcomeSession,
		Ratenzahlung:           d.Ratenzahlung,
		PaidMembershipFee:      d.PaidMembershipFee,
		WillingToGiftAShare:    d.WillingToGiftAShare,
		UserID:                 d.UserID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareOwner converts a model ShareOwner to a domain ShareOwner.
func ToDomainShareOwner(m models.ShareOwner) domain.ShareOwner {
	return domain.ShareOwner{
		ID:                     m.ID,
		IsCompany:              m.IsCompany,
		CompanyName:            m.CompanyName,
		FirstName:              m.FirstName,
		LastName:               m.LastName,
		Email:                  m.Email,
		PhoneNumber:            m.PhoneNumber,
		Street:                 m.Street,
		Postcode:               m.Postcode,
		City:                   m.City,
		Country:                m.Country,
		PreferredLanguage:      m.PreferredLanguage,
		IsInvesting:            m.IsInvesting,
		AttendedWelcomeSession: m.AttendedWelcomeSession,
		Ratenzahlung:           m.Ratenzahlung,
		PaidMembershipFee:      m.PaidMembershipFee,
		WillingToGiftAShare:    m.WillingToGiftAShare,
		UserID:                 m.UserID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
