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

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan ledgers. All writing
// methods are single database transactions pairing the loan row's versioned
// update with the record that justifies it.
func newPgxLoanRepository(pool PgxPool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, borrower_id, product_id, application_id, principal_amount,
	term, term_period, interest_rate, interest_type, interest_amount, fees_amount,
	total_amount, outstanding_amount, status, start_date, expected_end_date,
	actual_end_date, taken_over_from_id, taken_over_by_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.BorrowerID,
		&m.ProductID,
		&m.ApplicationID,
		&m.PrincipalAmount,
		&m.Term,
		&m.TermPeriod,
		&m.InterestRate,
		&m.InterestType,
		&m.InterestAmount,
		&m.FeesAmount,
		&m.TotalAmount,
		&m.OutstandingAmount,
		&m.Status,
		&m.StartDate,
		&m.ExpectedEndDate,
		&m.ActualEndDate,
		&m.TakenOverFromID,
		&m.TakenOverByID,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLoanByID retrieves a loan by its unique identifier.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	m, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}

	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}

// ListLoansByBorrower retrieves a page of the borrower's loans, newest first,
// using an opaque (created_at, loan_id) keyset token.
func (r *PgxLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE borrower_id = $1`
	args := []any{borrowerID}

	if nextToken != nil {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: bad pagination token", apperrors.ErrValidation)
		}
		query += ` AND (created_at, loan_id) < ($2::timestamptz, $3)`
		args = append(args, fields[0], fields[1])
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, loan_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list loans for borrower %s: %w", borrowerID, err)
	}
	defer rows.Close()

	modelLoans := make([]models.Loan, 0, limit+1)
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		modelLoans = append(modelLoans, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read loan rows: %w", err)
	}

	var token *string
	if len(modelLoans) > limit {
		modelLoans = modelLoans[:limit]
		last := modelLoans[limit-1]
		t := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.LoanID)
		token = &t
	}
	return mapping.ToDomainLoanSlice(modelLoans), token, nil
}

// insertLoan writes a brand-new loan row inside tx.
func (r *PgxLoanRepository) insertLoan(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := tx.Exec(ctx, query,
		m.LoanID, m.BorrowerID, m.ProductID, m.ApplicationID, m.PrincipalAmount,
		m.Term, m.TermPeriod, m.InterestRate, m.InterestType, m.InterestAmount, m.FeesAmount,
		m.TotalAmount, m.OutstandingAmount, m.Status, m.StartDate, m.ExpectedEndDate,
		m.ActualEndDate, m.TakenOverFromID, m.TakenOverByID, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("open loan already exists for borrower %s: %w", m.BorrowerID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert loan %s: %w", m.LoanID, err)
	}
	return nil
}

// updateLoanCAS applies the loan's mutable fields inside tx, compare-and-set
// against expectedVersion. Zero rows updated means another writer got there
// first and the whole transaction must be retried from a fresh read.
func (r *PgxLoanRepository) updateLoanCAS(ctx context.Context, tx pgx.Tx, loan domain.Loan, expectedVersion int64) error {
	m := mapping.ToModelLoan(loan)
	query := `
		UPDATE loans SET
			term = $3,
			interest_rate = $4,
			interest_type = $5,
			interest_amount = $6,
			total_amount = $7,
			outstanding_amount = $8,
			status = $9,
			start_date = $10,
			expected_end_date = $11,
			actual_end_date = $12,
			taken_over_by_id = $13,
			version = $2 + 1,
			last_updated_at = $14,
			last_updated_by = $15
		WHERE loan_id = $1 AND version = $2;
	`
	tag, err := tx.Exec(ctx, query,
		m.LoanID,
		expectedVersion,
		m.Term,
		m.InterestRate,
		m.InterestType,
		m.InterestAmount,
		m.TotalAmount,
		m.OutstandingAmount,
		m.Status,
		m.StartDate,
		m.ExpectedEndDate,
		m.ActualEndDate,
		m.TakenOverByID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", m.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s at version %d: %w", m.LoanID, expectedVersion, apperrors.ErrConcurrentModification)
	}
	return nil
}

// CreateLoanFromApproval persists the new loan, its approval record and the
// application's APPROVED status atomically.
func (r *PgxLoanRepository) CreateLoanFromApproval(ctx context.Context, loan domain.Loan, approval domain.LoanApproval, application domain.LoanApplication) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertLoan(ctx, tx, loan); err != nil {
		return err
	}

	a := mapping.ToModelApproval(approval)
	approvalQuery := `
		INSERT INTO loan_approvals (
			approval_id, application_id, approved_amount, approved_term, approved_rate,
			status, approver_id, notes, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, approvalQuery,
		a.ApprovalID, a.ApplicationID, a.ApprovedAmount, a.ApprovedTerm, a.ApprovedRate,
		a.Status, a.ApproverID, a.Notes, a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert approval %s: %w", a.ApprovalID, err)
	}

	app := mapping.ToModelApplication(application)
	appQuery := `
		UPDATE loan_applications SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE application_id = $1;
	`
	if _, err := tx.Exec(ctx, appQuery, app.ApplicationID, app.Status, app.LastUpdatedAt, app.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to update application %s: %w", app.ApplicationID, err)
	}

	return r.Commit(ctx, tx)
}

// DisburseLoan inserts the disbursement record and applies the versioned loan
// update. The unique index on loan_disbursements(loan_id) turns a racing
// second disbursement into ErrAlreadyDisbursed.
func (r *PgxLoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan, expectedVersion int64, disbursement domain.LoanDisbursement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	d := mapping.ToModelDisbursement(disbursement)
	query := `
		INSERT INTO loan_disbursements (
			disbursement_id, loan_id, amount, method, external_ref, disbursed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		d.DisbursementID, d.LoanID, d.Amount, d.Method, d.ExternalRef, d.DisbursedAt,
		d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("loan %s: %w", d.LoanID, apperrors.ErrAlreadyDisbursed)
		}
		return fmt.Errorf("failed to insert disbursement %s: %w", d.DisbursementID, err)
	}

	if err := r.updateLoanCAS(ctx, tx, loan, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyRepayment upserts the repayment row and applies the versioned loan
// update. Upsert covers both paths: a privileged entry inserts COMPLETED
// directly, an approved pending entry flips its existing row.
func (r *PgxLoanRepository) ApplyRepayment(ctx context.Context, loan domain.Loan, expectedVersion int64, repayment domain.LoanRepayment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := upsertRepayment(ctx, tx, repayment); err != nil {
		return err
	}

	if err := r.updateLoanCAS(ctx, tx, loan, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyRestructure upserts the restructure decision and applies the versioned
// loan update.
func (r *PgxLoanRepository) ApplyRestructure(ctx context.Context, loan domain.Loan, expectedVersion int64, restructure domain.LoanRestructure) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := upsertRestructure(ctx, tx, restructure); err != nil {
		return err
	}
	if err := r.updateLoanCAS(ctx, tx, loan, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyTakeover closes the source loan, creates the successor loan and stores
// the takeover decision atomically.
func (r *PgxLoanRepository) ApplyTakeover(ctx context.Context, source domain.Loan, expectedVersion int64, successor domain.Loan, takeover domain.LoanTakeover) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.updateLoanCAS(ctx, tx, source, expectedVersion); err != nil {
		return err
	}
	if err := r.insertLoan(ctx, tx, successor); err != nil {
		return err
	}
	if err := upsertTakeover(ctx, tx, takeover); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ApplyDefault upserts the default record and applies the versioned loan update.
func (r *PgxLoanRepository) ApplyDefault(ctx context.Context, loan domain.Loan, expectedVersion int64, loanDefault domain.LoanDefault) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	d := mapping.ToModelDefault(loanDefault)
	query := `
		INSERT INTO loan_defaults (
			default_id, loan_id, default_amount, default_date, reason, status,
			resolved_at, written_off_at, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (default_id) DO UPDATE SET
			status = EXCLUDED.status,
			resolved_at = EXCLUDED.resolved_at,
			written_off_at = EXCLUDED.written_off_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = tx.Exec(ctx, query,
		d.DefaultID, d.LoanID, d.DefaultAmount, d.DefaultDate, d.Reason, d.Status,
		d.ResolvedAt, d.WrittenOffAt, d.CreatedAt, d.CreatedBy, d.LastUpdatedAt, d.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert default %s: %w", d.DefaultID, err)
	}

	if err := r.updateLoanCAS(ctx, tx, loan, expectedVersion); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
