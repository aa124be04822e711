package domain

import (
	"fmt"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LedgerMutation is the tagged union of ways a derivative flow may change a
// loan ledger: restructures adjust the existing row in place, takeovers close
// it and hand the balance to a brand-new loan. Keeping both behind one
// interface keeps the state machine path uniform.
type LedgerMutation interface {
	// ApplyTo mutates the target loan, or fails without side effect.
	ApplyTo(loan *Loan, at time.Time) error
}

// InPlaceAdjustment re-terms an active loan without replacing the record.
// Used by restructure: the committed principal stays, term/rate/interest/total
// and the outstanding balance are recomputed.
type InPlaceAdjustment struct {
	NewTerm           int
	NewRate           decimal.Decimal
	NewInterestType   InterestType
	NewInterestAmount decimal.Decimal
	NewTotalAmount    decimal.Decimal
	NewOutstanding    decimal.Decimal
}

func (m InPlaceAdjustment) ApplyTo(loan *Loan, at time.Time) error {
	if loan.Status != LoanActive && loan.Status != LoanDisbursed {
		return fmt.Errorf("loan %s: in-place adjustment in status %s: %w", loan.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
	}
	loan.Term = m.NewTerm
	loan.InterestRate = m.NewRate
	loan.InterestType = m.NewInterestType
	loan.InterestAmount = m.NewInterestAmount
	loan.TotalAmount = m.NewTotalAmount
	loan.OutstandingAmount = m.NewOutstanding
	loan.LastUpdatedAt = at
	return nil
}

// SupersedeWithNewLedger terminates a loan in favour of a successor created by
// a takeover. The two records stay cross-linked by back-reference only.
type SupersedeWithNewLedger struct {
	SuccessorLoanID string
}

func (m SupersedeWithNewLedger) ApplyTo(loan *Loan, at time.Time) error {
	if err := loan.TransitionTo(LoanTakenOver); err != nil {
		return err
	}
	end := at
	loan.ActualEndDate = &end
	successor := m.SuccessorLoanID
	loan.TakenOverByID = &successor
	loan.LastUpdatedAt = at
	return nil
}
