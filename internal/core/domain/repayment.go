package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentStatus is the state of a posted repayment.
type RepaymentStatus string

const (
	RepaymentPending   RepaymentStatus = "PENDING"
	RepaymentCompleted RepaymentStatus = "COMPLETED"
	RepaymentRejected  RepaymentStatus = "REJECTED"
)

// LoanRepayment is a payment posted against a loan. Only COMPLETED repayments
// move the outstanding balance; repayments entered by non-privileged actors
// wait in PENDING for an explicit approval.
type LoanRepayment struct {
	RepaymentID  string          `json:"repaymentID"`
	LoanID       string          `json:"loanID"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Method       string          `json:"method"`
	Reference    string          `json:"reference"` // Optional deduction/bank reference
	Status       RepaymentStatus `json:"status"`
	ProcessedAt  *time.Time      `json:"processedAt"` // When the repayment became COMPLETED
	RejectReason string          `json:"rejectReason"`
	AuditFields
}
