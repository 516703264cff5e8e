package mapping

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToModelTapirUser converts a domain TapirUser to a model TapirUser
func ToModelTapirUser(d domain.TapirUser) models.TapirUser {
	perms := make([]string, len(d.Permissions))
	for i, p := range d.Permissions {
		perms[i] = string(p)
	}
	return models.TapirUser{
		UserID:            d.UserID,
		Username:          d.Username,
		PasswordHash:      d.PasswordHash,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Email:             d.Email,
		PhoneNumber:       d.PhoneNumber,
		Street:            d.Street,
		Postcode:          d.Postcode,
		City:              d.City,
		Country:           d.Country,
		PreferredLanguage: d.PreferredLanguage,
		Permissions:       perms,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTapirUser converts a model TapirUser to a domain TapirUser
func ToDomainTapirUser(m models.TapirUser) domain.TapirUser {
	perms := make([]domain.Permission, len(m.Permissions))
	for i, p := range m.Permissions {
		perms[i] = domain.Permission(p)
	}
	return domain.TapirUser{
		UserID:            m.UserID,
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		Street:            m.Street,
		Postcode:          m.Postcode,
		City:              m.City,
		Country:           m.Country,
		PreferredLanguage: m.PreferredLanguage,
		Permissions:       perms,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
