package mapping

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToModelDraftUser converts a domain DraftUser to a model DraftUser
func ToModelDraftUser(d domain.DraftUser) models.DraftUser {
	return models.DraftUser{
		ID:                        d.ID,
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
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDraftUser converts a model DraftUser to a domain DraftUser
func ToDomainDraftUser(m models.DraftUser) domain.DraftUser {
	return domain.DraftUser{
		ID:                        m.ID,
		FirstName:                 m.FirstName,
		LastName:                  m.LastName,
		Email:                     m.Email,
		PhoneNumber:               m.PhoneNumber,
		Street:                    m.Street,
		Postcode:                  m.Postcode,
		City:                      m.City,
		Country:                   m.Country,
		PreferredLanguage:         m.PreferredLanguage,
		NumShares:                 m.NumShares,
		IsInvesting:               m.IsInvesting,
		Ratenzahlung:              m.Ratenzahlung,
		SignedMembershipAgreement: m.SignedMembershipAgreement,
		AttendedWelcomeSession:    m.AttendedWelcomeSession,
		PaidMembershipFee:         m.PaidMembershipFee,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDraftUserSlice converts a slice of model DraftUsers to domain form
func ToDomainDraftUserSlice(ms []models.DraftUser) []domain.DraftUser {
	ds := make([]domain.DraftUser, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDraftUser(m)
	}
	return ds
}
