package repositories

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// ApplicationReader defines read operations for loan applications.
type ApplicationReader interface {
	// FindApplicationByID retrieves a specific application.
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error)

	// ExistsOpenChain reports whether the borrower already has an open
	// application or a non-terminal loan for the product. Callers must pair it
	// with the storage-level unique guard; the check alone is race-prone.
	ExistsOpenChain(ctx context.Context, borrowerID, productID string) (bool, error)
}

// ApplicationWriter defines write operations for loan applications.
type ApplicationWriter interface {
	// SaveApplication persists a new application. The one-open-chain rule is
	// enforced by a storage constraint; violations surface as ErrDuplicate.
	SaveApplication(ctx context.Context, application domain.LoanApplication) error

	// UpdateApplication updates the status and decision fields of an application.
	UpdateApplication(ctx context.Context, application domain.LoanApplication) error
}

// ApplicationRepositoryFacade combines all application repository interfaces.
type ApplicationRepositoryFacade interface {
	ApplicationReader
	ApplicationWriter
}
