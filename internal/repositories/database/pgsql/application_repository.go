package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	"github.com/emkopo/employee_lending_app/internal/models"
	"github.com/emkopo/employee_lending_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxApplicationRepository struct {
	BaseRepository
}

// newPgxApplicationRepository creates a new repository for loan applications.
func newPgxApplicationRepository(pool PgxPool) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

const applicationColumns = `application_id, borrower_id, product_id, requested_amount, requested_term,
	purpose, status, parent_loan_id, takeover_loan_id, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanApplication(row pgx.Row) (models.LoanApplication, error) {
	var m models.LoanApplication
	err := row.Scan(
		&m.ApplicationID,
		&m.BorrowerID,
		&m.ProductID,
		&m.RequestedAmount,
		&m.RequestedTerm,
		&m.Purpose,
		&m.Status,
		&m.ParentLoanID,
		&m.TakeoverLoanID,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindApplicationByID retrieves an application by its unique identifier.
func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications WHERE application_id = $1;`

	m, err := scanApplication(r.Pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}

	application := mapping.ToDomainApplication(m)
	return &application, nil
}

// ExistsOpenChain reports whether the borrower already has an open application
// or a not-yet-terminal loan for the product. This advisory read backs the
// one-open-chain rule; the partial unique indexes close the race for real.
func (r *PgxApplicationRepository) ExistsOpenChain(ctx context.Context, borrowerID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM loan_applications
			WHERE borrower_id = $1 AND product_id = $2
			  AND status NOT IN ('REJECTED', 'CANCELLED', 'APPROVED')
		) OR EXISTS (
			SELECT 1 FROM loans
			WHERE borrower_id = $1 AND product_id = $2
			  AND status NOT IN ('COMPLETED', 'WRITTEN_OFF', 'TAKEN_OVER')
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, borrowerID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open chain for borrower %s: %w", borrowerID, err)
	}
	return exists, nil
}

// SaveApplication inserts a new application.
func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, application domain.LoanApplication) error {
	m := mapping.ToModelApplication(application)
	query := `
		INSERT INTO loan_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ApplicationID,
		m.BorrowerID,
		m.ProductID,
		m.RequestedAmount,
		m.RequestedTerm,
		m.Purpose,
		m.Status,
		m.ParentLoanID,
		m.TakeoverLoanID,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("open application already exists for borrower %s: %w", m.BorrowerID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save application %s: %w", m.ApplicationID, err)
	}
	return nil
}

// UpdateApplication updates a stored application's mutable fields.
func (r *PgxApplicationRepository) UpdateApplication(ctx context.Context, application domain.LoanApplication) error {
	m := mapping.ToModelApplication(application)
	query := `
		UPDATE loan_applications SET
			status = $2,
			rejection_reason = $3,
			takeover_loan_id = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE application_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ApplicationID,
		m.Status,
		m.RejectionReason,
		m.TakeoverLoanID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update application %s: %w", m.ApplicationID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", m.ApplicationID, apperrors.ErrNotFound)
	}
	return nil
}
