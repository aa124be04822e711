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

type PgxTakeoverRepository struct {
	BaseRepository
}

// newPgxTakeoverRepository creates a new repository for takeover requests.
func newPgxTakeoverRepository(pool PgxPool) portsrepo.TakeoverRepositoryFacade {
	return &PgxTakeoverRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TakeoverRepositoryFacade = (*PgxTakeoverRepository)(nil)

// upsertTakeover writes a takeover row through exec, shared by this repository
// and the loan repository's atomic ApplyTakeover.
func upsertTakeover(ctx context.Context, exec executor, takeover domain.LoanTakeover) error {
	m := mapping.ToModelTakeover(takeover)
	query := `
		INSERT INTO loan_takeovers (
			takeover_id, source_loan_id, new_product_id, outstanding_principal,
			additional_amount, new_term, new_loan_id, status, decided_by, reject_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (takeover_id) DO UPDATE SET
			outstanding_principal = EXCLUDED.outstanding_principal,
			new_loan_id = EXCLUDED.new_loan_id,
			status = EXCLUDED.status,
			decided_by = EXCLUDED.decided_by,
			reject_reason = EXCLUDED.reject_reason,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		m.TakeoverID, m.SourceLoanID, m.NewProductID, m.OutstandingPrincipal,
		m.AdditionalAmount, m.NewTerm, m.NewLoanID, m.Status, m.DecidedBy, m.RejectReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert takeover %s: %w", m.TakeoverID, err)
	}
	return nil
}

// FindTakeoverByID retrieves a takeover request by its identifier.
func (r *PgxTakeoverRepository) FindTakeoverByID(ctx context.Context, takeoverID string) (*domain.LoanTakeover, error) {
	query := `
		SELECT takeover_id, source_loan_id, new_product_id, outstanding_principal,
			additional_amount, new_term, new_loan_id, status, decided_by, reject_reason,
			created_at, created_by, last_updated_at, last_updated_by
		FROM loan_takeovers
		WHERE takeover_id = $1;
	`
	var m models.LoanTakeover
	err := r.Pool.QueryRow(ctx, query, takeoverID).Scan(
		&m.TakeoverID,
		&m.SourceLoanID,
		&m.NewProductID,
		&m.OutstandingPrincipal,
		&m.AdditionalAmount,
		&m.NewTerm,
		&m.NewLoanID,
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
		return nil, fmt.Errorf("failed to find takeover %s: %w", takeoverID, err)
	}

	takeover := mapping.ToDomainTakeover(m)
	return &takeover, nil
}

// SaveTakeover inserts a pending takeover request.
func (r *PgxTakeoverRepository) SaveTakeover(ctx context.Context, takeover domain.LoanTakeover) error {
	return upsertTakeover(ctx, r.Pool, takeover)
}

// UpdateTakeover updates a stored takeover request.
func (r *PgxTakeoverRepository) UpdateTakeover(ctx context.Context, takeover domain.LoanTakeover) error {
	return upsertTakeover(ctx, r.Pool, takeover)
}
