package domain

import "github.com/shopspring/decimal"

// LoanRestructure records a renegotiation of term/rate on an existing loan.
// Applying an approved restructure mutates the target loan in place; the loan
// record itself is never replaced.
type LoanRestructure struct {
	RestructureID        string          `json:"restructureID"`
	LoanID               string          `json:"loanID"`
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipalAtRequest"`
	NewTerm              int             `json:"newTerm"`
	NewRate              decimal.Decimal `json:"newRate"`
	NewInterestType      InterestType    `json:"newInterestType"`
	NewInterestAmount    decimal.Decimal `json:"newInterestAmount"`
	NewTotalAmount       decimal.Decimal `json:"newTotalAmount"`
	Status               ReviewStatus    `json:"status"`
	DecidedBy            string          `json:"decidedBy"`
	RejectReason         string          `json:"rejectReason"`
	AuditFields
}
