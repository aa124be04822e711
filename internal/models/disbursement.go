package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanDisbursement is the persisted disbursement row, unique per loan.
type LoanDisbursement struct {
	DisbursementID string          `db:"disbursement_id"`
	LoanID         string          `db:"loan_id"`
	Amount         decimal.Decimal `db:"amount"`
	Method         string          `db:"method"`
	ExternalRef    string          `db:"external_ref"`
	DisbursedAt    time.Time       `db:"disbursed_at"`
	AuditFields
}
