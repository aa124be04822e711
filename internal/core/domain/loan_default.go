package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStatus is the state of a recorded loan default.
type DefaultStatus string

const (
	DefaultActive     DefaultStatus = "ACTIVE"
	DefaultResolved   DefaultStatus = "RESOLVED"
	DefaultWrittenOff DefaultStatus = "WRITTEN_OFF"
)

// LoanDefault records a loan crossing into arrears. Resolving returns the loan
// to ACTIVE; writing off terminates it with no further repayment expected.
type LoanDefault struct {
	DefaultID     string          `json:"defaultID"`
	LoanID        string          `json:"loanID"`
	DefaultAmount decimal.Decimal `json:"defaultAmount"`
	DefaultDate   time.Time       `json:"defaultDate"`
	Reason        string          `json:"reason"`
	Status        DefaultStatus   `json:"status"`
	ResolvedAt    *time.Time      `json:"resolvedAt"`
	WrittenOffAt  *time.Time      `json:"writtenOffAt"`
	AuditFields
}
