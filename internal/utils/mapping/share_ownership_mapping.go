package mapping

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/hoelscher-berlin/tapir/internal/models"
)

// ToModelShareOwnership converts a domain ShareOwnership to a model ShareOwnership
func ToModelShareOwnership(d domain.ShareOwnership) models.ShareOwnership {
	return models.ShareOwnership{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		AmountPaid:  d.AmountPaid,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShareOwnership converts a model ShareOwnership to a domain ShareOwnership
func ToDomainShareOwnership(m models.ShareOwnership) domain.ShareOwnership {
	return domain.ShareOwnership{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		AmountPaid:  m.AmountPaid,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainShareOwnershipSlice converts a slice of model ShareOwnerships to domain form
func ToDomainShareOwnershipSlice(ms []models.ShareOwnership) []domain.ShareOwnership {
	ds := make([]domain.ShareOwnership, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainShareOwnership(m)
	}
	return ds
}

// ToModelExtraSharesRecap converts a domain recap to its model form
func ToModelExtraSharesRecap(d domain.ExtraSharesAccountingRecap) models.ExtraSharesAccountingRecap {
	return models.ExtraSharesAccountingRecap{
		ID:             d.ID,
		MemberID:       d.MemberID,
		NumberOfShares: d.NumberOfShares,
		Date:           d.Date,
	}
}
