package repositories

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// LoanReader defines read operations for loan ledgers.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoansByBorrower retrieves a paginated list of a borrower's loans
	// using token-based pagination.
	ListLoansByBorrower(ctx context.Context, borrowerID string, limit int, nextToken *string) ([]domain.Loan, *string, error)
}

// LoanWriter defines the ledger-mutating operations. Each method is a single
// database transaction: the transition record and the loan row land together
// or not at all. Loan updates are compare-and-set against expectedVersion;
// a lost race surfaces as ErrConcurrentModification and nothing is written.
type LoanWriter interface {
	// CreateLoanFromApproval persists the new loan, its approval record and the
	// application's APPROVED status atomically.
	CreateLoanFromApproval(ctx context.Context, loan domain.Loan, approval domain.LoanApproval, application domain.LoanApplication) error

	// DisburseLoan inserts the disbursement record and applies the versioned
	// loan update. A second disbursement for the same loan fails with
	// ErrAlreadyDisbursed.
	DisburseLoan(ctx context.Context, loan domain.Loan, expectedVersion int64, disbursement domain.LoanDisbursement) error

	// ApplyRepayment upserts the repayment row and applies the versioned loan update.
	ApplyRepayment(ctx context.Context, loan domain.Loan, expectedVersion int64, repayment domain.LoanRepayment) error

	// ApplyRestructure upserts the restructure decision and applies the versioned loan update.
	ApplyRestructure(ctx context.Context, loan domain.Loan, expectedVersion int64, restructure domain.LoanRestructure) error

	// ApplyTakeover closes the source loan, creates the successor loan and
	// stores the takeover decision atomically.
	ApplyTakeover(ctx context.Context, source domain.Loan, expectedVersion int64, successor domain.Loan, takeover domain.LoanTakeover) error

	// ApplyDefault upserts the default record and applies the versioned loan update.
	ApplyDefault(ctx context.Context, loan domain.Loan, expectedVersion int64, loanDefault domain.LoanDefault) error
}

// LoanRepositoryFacade combines all loan repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
