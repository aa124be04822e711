package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	"github.com/emkopo/employee_lending_app/internal/models"
	"github.com/emkopo/employee_lending_app/internal/utils/mapping"
	"github.com/emkopo/employee_lending_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const repaymentColumns = `repayment_id, loan_id, amount, payment_date, method, reference, status,
	processed_at, reject_reason, created_at, created_by, last_updated_at, last_updated_by`

type PgxRepaymentRepository struct {
	BaseRepository
}

// newPgxRepaymentRepository creates a new repository for repayment entries.
func newPgxRepaymentRepository(pool PgxPool) portsrepo.RepaymentRepositoryFacade {
	return &PgxRepaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RepaymentRepositoryFacade = (*PgxRepaymentRepository)(nil)

// upsertRepayment writes a repayment row through exec, shared by this
// repository and the loan repository's atomic ApplyRepayment.
func upsertRepayment(ctx context.Context, exec executor, repayment domain.LoanRepayment) error {
	m := mapping.ToModelRepayment(repayment)
	query := `
		INSERT INTO loan_repayments (` + repaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (repayment_id) DO UPDATE SET
			status = EXCLUDED.status,
			processed_at = EXCLUDED.processed_at,
			reject_reason = EXCLUDED.reject_reason,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := exec.Exec(ctx, query,
		m.RepaymentID, m.LoanID, m.Amount, m.PaymentDate, m.Method, m.Reference, m.Status,
		m.ProcessedAt, m.RejectReason, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert repayment %s: %w", m.RepaymentID, err)
	}
	return nil
}

func scanRepayment(row pgx.Row) (models.LoanRepayment, error) {
	var m models.LoanRepayment
	err := row.Scan(
		&m.RepaymentID,
		&m.LoanID,
		&m.Amount,
		&m.PaymentDate,
		&m.Method,
		&m.Reference,
		&m.Status,
		&m.ProcessedAt,
		&m.RejectReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindRepaymentByID retrieves a repayment entry by its identifier.
func (r *PgxRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM loan_repayments WHERE repayment_id = $1;`
	m, err := scanRepayment(r.Pool.QueryRow(ctx, query, repaymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find repayment %s: %w", repaymentID, err)
	}

	repayment := mapping.ToDomainRepayment(m)
	return &repayment, nil
}

// ListRepaymentsByLoan retrieves a page of a loan's repayments, newest first,
// using an opaque (created_at, repayment_id) keyset token.
func (r *PgxRepaymentRepository) ListRepaymentsByLoan(ctx context.Context, loanID string, limit int, nextToken *string) ([]domain.LoanRepayment, *string, error) {
	query := `SELECT ` + repaymentColumns + ` FROM loan_repayments WHERE loan_id = $1`
	args := []any{loanID}

	if nextToken != nil {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: bad pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, repayment_id) < ($2::timestamptz, $3)`
		args = append(args, fields[0], fields[1])
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, repayment_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list repayments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	modelRepayments := make([]models.LoanRepayment, 0, limit+1)
	for rows.Next() {
		m, err := scanRepayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan repayment row: %w", err)
		}
		modelRepayments = append(modelRepayments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read repayment rows: %w", err)
	}

	var token *string
	if len(modelRepayments) > limit {
		modelRepayments = modelRepayments[:limit]
		last := modelRepayments[limit-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.RepaymentID)
		token = &t
	}
	return mapping.ToDomainRepaymentSlice(modelRepayments), token, nil
}

// SaveRepayment inserts a repayment entry.
func (r *PgxRepaymentRepository) SaveRepayment(ctx context.Context, repayment domain.LoanRepayment) error {
	return upsertRepayment(ctx, r.Pool, repayment)
}

// UpdateRepayment updates a stored repayment entry.
func (r *PgxRepaymentRepository) UpdateRepayment(ctx context.Context, repayment domain.LoanRepayment) error {
	return upsertRepayment(ctx, r.Pool, repayment)
}
