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

type PgxDefaultRepository struct {
	BaseRepository
}

// newPgxDefaultRepository creates a new read repository for default records.
// Writes always travel with the loan row through LoanWriter.ApplyDefault.
func newPgxDefaultRepository(pool PgxPool) portsrepo.DefaultRepositoryFacade {
	return &PgxDefaultRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DefaultRepositoryFacade = (*PgxDefaultRepository)(nil)

// FindDefaultByID retrieves a default record by its identifier.
func (r *PgxDefaultRepository) FindDefaultByID(ctx context.Context, defaultID string) (*domain.LoanDefault, error) {
	query := `
		SELECT default_id, loan_id, default_amount, default_date, reason, status,
			resolved_at, written_off_at, created_at, created_by, last_updated_at, last_updated_by
		FROM loan_defaults
		WHERE default_id = $1;
	`
	var m models.LoanDefault
	err := r.Pool.QueryRow(ctx, query, defaultID).Scan(
		&m.DefaultID,
		&m.LoanID,
		&m.DefaultAmount,
		&m.DefaultDate,
		&m.Reason,
		&m.Status,
		&m.ResolvedAt,
		&m.WrittenOffAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find default %s: %w", defaultID, err)
	}

	loanDefault := mapping.ToDomainDefault(m)
	return &loanDefault, nil
}
