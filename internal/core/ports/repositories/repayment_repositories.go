package repositories

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// RepaymentReader defines read operations for repayments.
type RepaymentReader interface {
	FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error)

	// ListRepaymentsByLoan retrieves a paginated list of a loan's repayments
	// using token-based pagination.
	ListRepaymentsByLoan(ctx context.Context, loanID string, limit int, nextToken *string) ([]domain.LoanRepayment, *string, error)
}

// RepaymentWriter defines write operations for repayments that do not touch
// the loan ledger (pending entries and rejections). Completing a repayment
// goes through LoanWriter.ApplyRepayment instead.
type RepaymentWriter interface {
	SaveRepayment(ctx context.Context, repayment domain.LoanRepayment) error
	UpdateRepayment(ctx context.Context, repayment domain.LoanRepayment) error
}

// RepaymentRepositoryFacade combines all repayment repository interfaces.
type RepaymentRepositoryFacade interface {
	RepaymentReader
	RepaymentWriter
}
