package domain

import (
	"fmt"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LoanStatus is the state of a loan in its lifecycle.
type LoanStatus string

const (
	LoanApproved           LoanStatus = "APPROVED"
	LoanDisbursed          LoanStatus = "DISBURSED"
	LoanActive             LoanStatus = "ACTIVE"
	LoanPendingRestructure LoanStatus = "PENDING_RESTRUCTURE"
	LoanPendingTopUp       LoanStatus = "PENDING_TOP_UP"
	LoanPendingTakeover    LoanStatus = "PENDING_TAKEOVER"
	LoanPendingDefault     LoanStatus = "PENDING_DEFAULT"
	LoanDefaulted          LoanStatus = "DEFAULTED"
	LoanCompleted          LoanStatus = "COMPLETED"
	LoanWrittenOff         LoanStatus = "WRITTEN_OFF"
	LoanTakenOver          LoanStatus = "TAKEN_OVER"
)

// legalTransitions is the loan lifecycle state machine. An edge absent here is
// illegal and must fail with apperrors.ErrInvalidStateTransition.
var legalTransitions = map[LoanStatus][]LoanStatus{
	LoanApproved:       {LoanDisbursed, LoanActive},
	LoanDisbursed:      {LoanActive, LoanCompleted, LoanTakenOver, LoanPendingDefault},
	LoanActive:         {LoanActive, LoanCompleted, LoanTakenOver, LoanPendingDefault},
	LoanPendingDefault: {LoanDefaulted, LoanActive},
	LoanDefaulted:      {LoanActive, LoanWrittenOff},
}

// Loan is the authoritative financial ledger for a single lending agreement.
// Rate, interest type and fee amounts are value copies taken from the product
// at approval time; they never track later product edits. OutstandingAmount is
// the only money field that moves during normal servicing.
type Loan struct {
	LoanID            string          `json:"loanID"`
	BorrowerID        string          `json:"borrowerID"`
	ProductID         string          `json:"productID"`
	ApplicationID     string          `json:"applicationID"`
	PrincipalAmount   decimal.Decimal `json:"principalAmount"`
	Term              int             `json:"term"`
	TermPeriod        TermPeriod      `json:"termPeriod"`
	InterestRate      decimal.Decimal `json:"interestRate"` // Snapshot, percent
	InterestType      InterestType    `json:"interestType"` // Snapshot
	InterestAmount    decimal.Decimal `json:"interestAmount"`
	FeesAmount        decimal.Decimal `json:"feesAmount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            LoanStatus      `json:"status"`
	StartDate         *time.Time      `json:"startDate"`
	ExpectedEndDate   *time.Time      `json:"expectedEndDate"`
	ActualEndDate     *time.Time      `json:"actualEndDate"`
	TakenOverFromID   *string         `json:"takenOverFromLoanID"` // Back-reference only
	TakenOverByID     *string         `json:"takenOverByLoanID"`   // Back-reference only
	Version           int64           `json:"version"`             // Optimistic concurrency token
	AuditFields
}

// CanTransitionTo reports whether moving to the target status is a legal edge.
func (l *Loan) CanTransitionTo(target LoanStatus) bool {
	for _, allowed := range legalTransitions[l.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the loan to the target status, or fails without side
// effect when the edge is illegal.
func (l *Loan) TransitionTo(target LoanStatus) error {
	if !l.CanTransitionTo(target) {
		return fmt.Errorf("loan %s: %s -> %s: %w", l.LoanID, l.Status, target, apperrors.ErrInvalidStateTransition)
	}
	l.Status = target
	return nil
}

// IsServiceable reports whether repayments may be posted against the loan.
func (l *Loan) IsServiceable() bool {
	return l.Status == LoanActive || l.Status == LoanDisbursed
}

// ApplyRepayment decrements the outstanding balance by a completed repayment.
// Reaching zero clamps the balance and completes the loan in the same step.
// The caller must have already rejected overpayments.
func (l *Loan) ApplyRepayment(amount decimal.Decimal, processedAt time.Time) (completed bool, err error) {
	if !l.IsServiceable() {
		return false, fmt.Errorf("loan %s: repayment in status %s: %w", l.LoanID, l.Status, apperrors.ErrInvalidStateTransition)
	}
	remaining := l.OutstandingAmount.Sub(amount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		l.OutstandingAmount = decimal.Zero
		if err := l.TransitionTo(LoanCompleted); err != nil {
			return false, err
		}
		at := processedAt
		l.ActualEndDate = &at
		return true, nil
	}
	l.OutstandingAmount = remaining
	if l.Status == LoanDisbursed {
		// First partial repayment settles the loan into ACTIVE.
		if err := l.TransitionTo(LoanActive); err != nil {
			return false, err
		}
	}
	return false, nil
}

// AmountPaid derives the total of completed repayments from the ledger fields.
func (l *Loan) AmountPaid() decimal.Decimal {
	return l.TotalAmount.Sub(l.OutstandingAmount)
}

// OutstandingPrincipal strips the not-yet-paid interest back out of the
// outstanding balance. Payments are allocated to interest first, so the
// remaining interest is the committed interest minus what has been paid so
// far, capped at zero. Restructure and takeover re-amortize this figure.
func (l *Loan) OutstandingPrincipal() decimal.Decimal {
	interestPaid := decimal.Min(l.AmountPaid(), l.InterestAmount)
	remainingInterest := l.InterestAmount.Sub(interestPaid)
	return l.OutstandingAmount.Sub(remainingInterest)
}
