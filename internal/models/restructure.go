package models

import "github.com/shopspring/decimal"

// LoanRestructure is the persisted restructure request/decision row.
type LoanRestructure struct {
	RestructureID        string          `db:"restructure_id"`
	LoanID               string          `db:"loan_id"`
	OutstandingPrincipal decimal.Decimal `db:"outstanding_principal"`
	NewTerm              int             `db:"new_term"`
	NewRate              decimal.Decimal `db:"new_rate"`
	NewInterestType      string          `db:"new_interest_type"`
	NewInterestAmount    decimal.Decimal `db:"new_interest_amount"`
	NewTotalAmount       decimal.Decimal `db:"new_total_amount"`
	Status               string          `db:"status"`
	DecidedBy            string          `db:"decided_by"`
	RejectReason         string          `db:"reject_reason"`
	AuditFields
}
