package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
	"github.com/emkopo/employee_lending_app/internal/dto"
	"github.com/emkopo/employee_lending_app/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// repaymentService implements repayment posting and the dual-trust queue.
type repaymentService struct {
	loanRepo      portsrepo.LoanRepositoryFacade
	repaymentRepo portsrepo.RepaymentRepositoryFacade
	publisher     portssvc.EventPublisher
	retries       int
}

// NewRepaymentService creates the repayment service.
func NewRepaymentService(loanRepo portsrepo.LoanRepositoryFacade, repaymentRepo portsrepo.RepaymentRepositoryFacade, publisher portssvc.EventPublisher, retries int) portssvc.RepaymentSvcFacade {
	return &repaymentService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		publisher:     publisher,
		retries:       retries,
	}
}

var _ portssvc.RepaymentSvcFacade = (*repaymentService)(nil)

// PostRepayment posts a payment against a loan. A privileged actor's entry
// completes immediately and moves the outstanding balance; anyone else's entry
// is stored PENDING and only counts once approved.
func (s *repaymentService) PostRepayment(ctx context.Context, req dto.PostRepaymentRequest) (*domain.LoanRepayment, error) {
	logger := logging.FromCtx(ctx)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: repayment amount must be positive", apperrors.ErrValidation)
	}

	if !req.ActorIsPrivileged {
		loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
		if err != nil {
			return nil, fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
		}
		if !loan.IsServiceable() {
			return nil, fmt.Errorf("loan %s in status %s cannot accept repayments: %w", req.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
		}
		if req.Amount.GreaterThan(loan.OutstandingAmount) {
			return nil, fmt.Errorf("%w: %s against outstanding %s on loan %s", apperrors.ErrOverpayment, req.Amount, loan.OutstandingAmount, req.LoanID)
		}

		repayment := s.newRepayment(req, domain.RepaymentPending, nil)
		if err := s.repaymentRepo.SaveRepayment(ctx, repayment); err != nil {
			return nil, fmt.Errorf("failed to save pending repayment: %w", err)
		}
		logger.Info("Repayment recorded pending approval",
			slog.String("repayment_id", repayment.RepaymentID),
			slog.String("loan_id", req.LoanID))
		return &repayment, nil
	}

	var repayment domain.LoanRepayment
	var settled domain.Loan
	var completedLoan bool
	err := retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
		}
		if req.Amount.GreaterThan(loan.OutstandingAmount) {
			return fmt.Errorf("%w: %s against outstanding %s on loan %s", apperrors.ErrOverpayment, req.Amount, loan.OutstandingAmount, req.LoanID)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		completed, err := loan.ApplyRepayment(req.Amount, now)
		if err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = req.ActorID

		repayment = s.newRepayment(req, domain.RepaymentCompleted, &now)
		if err := s.loanRepo.ApplyRepayment(ctx, *loan, expectedVersion, repayment); err != nil {
			return err
		}
		settled = *loan
		completedLoan = completed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAndPublishCompletion(ctx, &settled, repayment, completedLoan)
	return &repayment, nil
}

// ApproveRepayment completes a pending repayment against the loan's current
// balance. The overpayment check runs again here: the balance may have moved
// since the entry was posted.
func (s *repaymentService) ApproveRepayment(ctx context.Context, repaymentID, approverID string) error {
	repayment, err := s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
	if err != nil {
		return fmt.Errorf("failed to find repayment %s: %w", repaymentID, err)
	}
	if repayment.Status != domain.RepaymentPending {
		return fmt.Errorf("repayment %s in status %s cannot be approved: %w", repaymentID, repayment.Status, apperrors.ErrInvalidStateTransition)
	}

	var settled domain.Loan
	var completedLoan bool
	err = retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, repayment.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", repayment.LoanID, err)
		}
		if repayment.Amount.GreaterThan(loan.OutstandingAmount) {
			return fmt.Errorf("%w: %s against outstanding %s on loan %s", apperrors.ErrOverpayment, repayment.Amount, loan.OutstandingAmount, loan.LoanID)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		completed, err := loan.ApplyRepayment(repayment.Amount, now)
		if err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = approverID

		repayment.Status = domain.RepaymentCompleted
		repayment.ProcessedAt = &now
		repayment.LastUpdatedAt = now
		repayment.LastUpdatedBy = approverID
		if err := s.loanRepo.ApplyRepayment(ctx, *loan, expectedVersion, *repayment); err != nil {
			return err
		}
		settled = *loan
		completedLoan = completed
		return nil
	})
	if err != nil {
		return err
	}

	s.logAndPublishCompletion(ctx, &settled, *repayment, completedLoan)
	return nil
}

// RejectRepayment discards a pending repayment without touching the ledger.
func (s *repaymentService) RejectRepayment(ctx context.Context, repaymentID, reason, actorID string) error {
	repayment, err := s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
	if err != nil {
		return fmt.Errorf("failed to find repayment %s: %w", repaymentID, err)
	}
	if repayment.Status != domain.RepaymentPending {
		return fmt.Errorf("repayment %s in status %s cannot be rejected: %w", repaymentID, repayment.Status, apperrors.ErrInvalidStateTransition)
	}

	now := time.Now().UTC()
	repayment.Status = domain.RepaymentRejected
	repayment.RejectReason = reason
	repayment.LastUpdatedAt = now
	repayment.LastUpdatedBy = actorID

	if err := s.repaymentRepo.UpdateRepayment(ctx, *repayment); err != nil {
		return fmt.Errorf("failed to update repayment %s: %w", repaymentID, err)
	}
	logging.FromCtx(ctx).Info("Repayment rejected", slog.String("repayment_id", repaymentID))
	return nil
}

// ListRepaymentsByLoan retrieves a page of a loan's repayments.
func (s *repaymentService) ListRepaymentsByLoan(ctx context.Context, loanID string, params dto.ListParams) ([]domain.LoanRepayment, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	repayments, nextToken, err := s.repaymentRepo.ListRepaymentsByLoan(ctx, loanID, limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	return repayments, nextToken, nil
}

func (s *repaymentService) newRepayment(req dto.PostRepaymentRequest, status domain.RepaymentStatus, processedAt *time.Time) domain.LoanRepayment {
	now := time.Now().UTC()
	return domain.LoanRepayment{
		RepaymentID: uuid.NewString(),
		LoanID:      req.LoanID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Status:      status,
		ProcessedAt: processedAt,
		AuditFields: newAuditFields(req.ActorID, now),
	}
}

func (s *repaymentService) logAndPublishCompletion(ctx context.Context, loan *domain.Loan, repayment domain.LoanRepayment, loanCompleted bool) {
	logging.FromCtx(ctx).Info("Repayment completed",
		slog.String("repayment_id", repayment.RepaymentID),
		slog.String("loan_id", loan.LoanID),
		slog.String("outstanding", loan.OutstandingAmount.String()),
		slog.Bool("loan_completed", loanCompleted))
	publishEvent(ctx, s.publisher, domain.EventRepaymentCompleted, loan, repayment.Amount)
	if loanCompleted {
		publishEvent(ctx, s.publisher, domain.EventLoanStatusChanged, loan, repayment.Amount)
	}
}
