package models

import "github.com/shopspring/decimal"

// LoanApplication is the persisted application row.
type LoanApplication struct {
	ApplicationID   string          `db:"application_id"`
	BorrowerID      string          `db:"borrower_id"`
	ProductID       string          `db:"product_id"`
	RequestedAmount decimal.Decimal `db:"requested_amount"`
	RequestedTerm   int             `db:"requested_term"`
	Purpose         string          `db:"purpose"`
	Status          string          `db:"status"`
	ParentLoanID    *string         `db:"parent_loan_id"`   // Nullable
	TakeoverLoanID  *string         `db:"takeover_loan_id"` // Nullable
	RejectionReason string          `db:"rejection_reason"`
	AuditFields
}
