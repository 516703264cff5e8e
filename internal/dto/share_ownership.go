package dto

import (
	"github.com/hoelscher-berlin/tapir/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateShareOwnershipsRequest creates a batch of shares for one owner.
// Dates use YYYY-MM-DD.
type CreateShareOwnershipsRequest struct {
	NumShares  int              `json:"numShares" binding:"required,min=1"`
	StartDate  string           `json:"startDate" binding:"required,dateonly"`
	EndDate    *string          `json:"endDate" binding:"omitempty,dateonly"`
	AmountPaid *decimal.Decimal `json:"amountPaid"` // defaults to 0, shares start unpaid
}

// UpdateShareOwnershipRequest edits one share ownership record. Pointers
// differentiate omitted fields from zero values; an empty-string EndDate
// clears the end date (the share becomes open-ended again).
type UpdateShareOwnershipRequest struct {
	StartDate  *string          `json:"startDate" binding:"omitempty,dateonly"`
	EndDate    *string          `json:"endDate" binding:"omitempty,dateonly"`
	AmountPaid *decimal.Decimal `json:"amountPaid"`
}

// ShareOwnershipResponse is the API representation of one share.
type ShareOwnershipResponse struct {
	ID         int64           `json:"id"`
	OwnerID    int64           `json:"ownerID"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	StartDate  string          `json:"startDate"`
	EndDate    *string         `json:"endDate,omitempty"`
}

// ToShareOwnershipResponse converts a domain ownership.
func ToShareOwnershipResponse(s *domain.ShareOwnership) ShareOwnershipResponse {
	resp := ShareOwnershipResponse{
		ID:         s.ID,
		OwnerID:    s.OwnerID,
		AmountPaid: s.AmountPaid,
		StartDate:  s.StartDate.Format("2006-01-02"),
	}
	if s.EndDate != nil {
		end := s.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
