package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the persisted loan ledger row. The version column backs optimistic
// concurrency; every mutating UPDATE carries WHERE version = $expected.
type Loan struct {
	LoanID            string          `db:"loan_id"`
	BorrowerID        string          `db:"borrower_id"`
	ProductID         string          `db:"product_id"`
	ApplicationID     string          `db:"application_id"`
	PrincipalAmount   decimal.Decimal `db:"principal_amount"`
	Term              int             `db:"term"`
	TermPeriod        string          `db:"term_period"`
	InterestRate      decimal.Decimal `db:"interest_rate"`
	InterestType      string          `db:"interest_type"`
	InterestAmount    decimal.Decimal `db:"interest_amount"`
	FeesAmount        decimal.Decimal `db:"fees_amount"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	Status            string          `db:"status"`
	StartDate         *time.Time      `db:"start_date"`        // Nullable
	ExpectedEndDate   *time.Time      `db:"expected_end_date"` // Nullable
	ActualEndDate     *time.Time      `db:"actual_end_date"`   // Nullable
	TakenOverFromID   *string         `db:"taken_over_from_id"`
	TakenOverByID     *string         `db:"taken_over_by_id"`
	Version           int64           `db:"version"`
	AuditFields
}
