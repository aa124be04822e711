package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostRepaymentRequest posts a payment against a loan. ActorIsPrivileged is
// decided by the excluded authorization collaborator: privileged entries
// complete immediately, others wait in PENDING for approval.
type PostRepaymentRequest struct {
	LoanID            string          `json:"loanID" validate:"required"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate       time.Time       `json:"paymentDate" validate:"required"`
	Method            string          `json:"method" validate:"required"`
	Reference         string          `json:"reference"`
	ActorID           string          `json:"actorID" validate:"required"`
	ActorIsPrivileged bool            `json:"actorIsPrivileged"`
}
