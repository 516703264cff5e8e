package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoelscher-berlin/tapir/internal/apperrors"
)

// ShareOwnership represents one purchased equity share unit belonging to a
// ShareOwner. The date range is inclusive on both ends; a nil EndDate means
// the share is held open-ended.
type ShareOwnership struct {
	ID         int64           `json:"id"`
	OwnerID    int64           `json:"ownerID"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	AuditFields
}

// IsActiveAt reports whether the share is held as of the given date.
// Boundaries are inclusive: a share starting on d is active at d, and a share
// ending on d is still active at d.
func (s ShareOwnership) IsActiveAt(at time.Time) bool {
	day := ToDate(at)
	if ToDate(s.StartDate).After(day) {
		return false
	}
	if s.EndDate != nil && ToDate(*s.EndDate).Before(day) {
		return false
	}
	return true
}

// Validate checks the date-range invariant.
func (s ShareOwnership) Validate() error {
	if s.EndDate != nil && ToDate(*s.EndDate).Before(ToDate(s.StartDate)) {
		return fmt.Errorf("%w: end date %s precedes start date %s", apperrors.ErrValidation,
			s.EndDate.Format("2006-01-02"), s.StartDate.Format("2006-01-02"))
	}
	return nil
}

// ExtraSharesAccountingRecap records a batch share purchase for the
// accounting recap mail. It is written in the same transaction as the
// ownerships it summarises.
type ExtraSharesAccountingRecap struct {
	ID             int64     `json:"id"`
	MemberID       int64     `json:"memberID"` // ShareOwner ID
	NumberOfShares int       `json:"numberOfShares"`
	Date           time.Time `json:"date"`
}
