package domain

import "github.com/shopspring/decimal"

// LoanTakeover records closing one loan and opening a replacement, possibly
// with a different product/provider and an additional cash amount. The new
// loan's principal is outstanding principal plus the additional amount.
type LoanTakeover struct {
	TakeoverID           string          `json:"takeoverID"`
	SourceLoanID         string          `json:"sourceLoanID"`
	NewProductID         string          `json:"newProductID"`
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipal"`
	AdditionalAmount     decimal.Decimal `json:"additionalAmount"`
	NewTerm              int             `json:"newTerm"`
	NewLoanID            *string         `json:"newLoanID"` // Set once the takeover is applied
	Status               ReviewStatus    `json:"status"`
	DecidedBy            string          `json:"decidedBy"`
	RejectReason         string          `json:"rejectReason"`
	AuditFields
}
