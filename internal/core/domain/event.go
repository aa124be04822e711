package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a domain event emitted after a ledger mutation commits.
type EventType string

const (
	EventLoanStatusChanged  EventType = "loan.status_changed"
	EventLoanDisbursed      EventType = "loan.disbursed"
	EventRepaymentCompleted EventType = "loan.repayment_completed"
	EventLoanRestructured   EventType = "loan.restructured"
	EventLoanTakenOver      EventType = "loan.taken_over"
	EventLoanDefaulted      EventType = "loan.defaulted"
)

// LoanEvent is consumed by the notification/audit/reporting collaborators.
// Delivery is fire-and-forget: a failed publish never rolls back the ledger.
type LoanEvent struct {
	EventID     string          `json:"eventID"`
	Type        EventType       `json:"type"`
	LoanID      string          `json:"loanID"`
	BorrowerID  string          `json:"borrowerID"`
	Status      LoanStatus      `json:"status"`
	Outstanding decimal.Decimal `json:"outstandingAmount"`
	Amount      decimal.Decimal `json:"amount"` // Operation amount, where applicable
	OccurredAt  time.Time       `json:"occurredAt"`
}
