package models

import "github.com/shopspring/decimal"

// LoanTakeover is the persisted takeover request/decision row.
type LoanTakeover struct {
	TakeoverID           string          `db:"takeover_id"`
	SourceLoanID         string          `db:"source_loan_id"`
	NewProductID         string          `db:"new_product_id"`
	OutstandingPrincipal decimal.Decimal `db:"outstanding_principal"`
	AdditionalAmount     decimal.Decimal `db:"additional_amount"`
	NewTerm              int             `db:"new_term"`
	NewLoanID            *string         `db:"new_loan_id"` // Nullable until applied
	Status               string          `db:"status"`
	DecidedBy            string          `db:"decided_by"`
	RejectReason         string          `db:"reject_reason"`
	AuditFields
}
