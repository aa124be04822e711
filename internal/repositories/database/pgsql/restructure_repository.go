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

type PgxRestructureRepository struct {
	BaseRepository
}

// newPgxRestructureRepository creates a new repository for restructure requests.
func newPgxRestructureRepository(pool PgxPool) portsrepo.RestructureRepositoryFacade {
	return &PgxRestructureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RestructureRepositoryFacade = (*PgxRestructureRepository)(nil)

// upsertRestructure writes a restructure row through exec, shared by this
// repository and the loan repository's atomic ApplyRestructure.
func upsertRestructure(ctx context.Context, exec executor, restructure domain.LoanRestructure) error {
	m := mapping.ToModelRestructure(restructure)
	query := `
		INSERT INTO loan_restructures (
			restructure_id, loan_id, outstanding_principal, new_term, new_rate,
			new_interest_type, new_interest_amount, new_total_amount, status,
			decided_by, reject_reason, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (restructure_id) DO UPDATE SET
			new_interest_amount = EXCLUDED.new_interest_amount,
			new_total_amount = EXCLUDED.new_total_amount,
			status = EXCLUDED.status,
			decided_by = EXCLUDED.decided_by,
			reject_reason = EXCLUDED.reject_reason,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		m.RestructureID, m.LoanID, m.OutstandingPrincipal, m.NewTerm, m.NewRate,
		m.NewInterestType, m.NewInterestAmount, m.NewTotalAmount, m.Status,
		m.DecidedBy, m.RejectReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert restructure %s: %w", m.RestructureID, err)
	}
	return nil
}

// FindRestructureByID retrieves a restructure request by its identifier.
func (r *PgxRestructureRepository) FindRestructureByID(ctx context.Context, restructureID string) (*domain.LoanRestructure, error) {
	query := `
		SELECT restructure_id, loan_id, outstanding_principal, new_term, new_rate,
			new_interest_type, new_interest_amount, new_total_amount, status,
			decided_by, reject_reason, created_at, created_by, last_updated_at, last_updated_by
		FROM loan_restructures
		WHERE restructure_id = $1;
	`
	var m models.LoanRestructure
	err := r.Pool.QueryRow(ctx, query, restructureID).Scan(
		&m.RestructureID,
		&m.LoanID,
		&m.OutstandingPrincipal,
		&m.NewTerm,
		&m.NewRate,
		&m.NewInterestType,
		&m.NewInterestAmount,
		&m.NewTotalAmount,
		&m.Status,
		&m.DecidedBy,
		&m.RejectReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find restructure %s: %w", restructureID, err)
	}

	restructure := mapping.ToDomainRestructure(m)
	return &restructure, nil
}

// SaveRestructure inserts a pending restructure request.
func (r *PgxRestructureRepository) SaveRestructure(ctx context.Context, restructure domain.LoanRestructure) error {
	return upsertRestructure(ctx, r.Pool, restructure)
}

// UpdateRestructure updates a stored restructure request.
func (r *PgxRestructureRepository) UpdateRestructure(ctx context.Context, restructure domain.LoanRestructure) error {
	return upsertRestructure(ctx, r.Pool, restructure)
}
