package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanDisbursement records the funding of a loan, one-to-one with the loan.
// Its creation is the only legal trigger for APPROVED -> DISBURSED.
type LoanDisbursement struct {
	DisbursementID string          `json:"disbursementID"`
	LoanID         string          `json:"loanID"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	ExternalRef    string          `json:"externalRef"` // Bank/mobile-money transaction reference
	DisbursedAt    time.Time       `json:"disbursedAt"`
	AuditFields
}
