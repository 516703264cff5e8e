package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShareOwnership represents one equity share row. start_date and end_date
// are DATE columns; a NULL end_date means the share is held open-ended.
type ShareOwnership struct {
	ID         int64           `json:"id" db:"id"`
	OwnerID    int64           `json:"ownerID" db:"owner_id"`
	AmountPaid decimal.Decimal `json:"amountPaid" db:"amount_paid"`
	StartDate  time.Time       `json:"startDate" db:"start_date"`
	EndDate    *time.Time      `json:"endDate" db:"end_date"`
	AuditFields
}

// ExtraSharesAccountingRecap records a batch share purchase for the monthly
// accounting recap mail.
type ExtraSharesAccountingRecap struct {
	ID             int64     `json:"id" db:"id"`
	MemberID       int64     `json:"memberID" db:"member_id"`
	NumberOfShares int       `json:"numberOfShares" db:"number_of_shares"`
	Date           time.Time `json:"date" db:"date"`
}
