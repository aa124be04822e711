package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanRepayment is the persisted repayment row.
type LoanRepayment struct {
	RepaymentID  string          `db:"repayment_id"`
	LoanID       string          `db:"loan_id"`
	Amount       decimal.Decimal `db:"amount"`
	PaymentDate  time.Time       `db:"payment_date"`
	Method       string          `db:"method"`
	Reference    string          `db:"reference"`
	Status       string          `db:"status"`
	ProcessedAt  *time.Time      `db:"processed_at"` // Nullable
	RejectReason string          `db:"reject_reason"`
	AuditFields
}
