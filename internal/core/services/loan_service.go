package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/core/finance"
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
	"github.com/emkopo/employee_lending_app/internal/dto"
	"github.com/emkopo/employee_lending_app/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// loanService implements approval, disbursement and ledger reads.
type loanService struct {
	loanRepo        portsrepo.LoanRepositoryFacade
	applicationRepo portsrepo.ApplicationRepositoryFacade
	productRepo     portsrepo.ProductRepositoryFacade
	publisher       portssvc.EventPublisher
	retries         int
}

// NewLoanService creates the loan lifecycle service.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, applicationRepo portsrepo.ApplicationRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, publisher portssvc.EventPublisher, retries int) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:        loanRepo,
		applicationRepo: applicationRepo,
		productRepo:     productRepo,
		publisher:       publisher,
		retries:         retries,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// ApproveApplication commits a loan on the approver's figures. The product's
// rate/fee values are copied into the loan here and never re-read afterwards,
// so later product edits cannot move a committed ledger.
func (s *loanService) ApproveApplication(ctx context.Context, req dto.ApproveApplicationRequest) (*domain.Loan, error) {
	logger := logging.FromCtx(ctx)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.ApprovedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: approved amount must be positive", apperrors.ErrValidation)
	}

	application, err := s.applicationRepo.FindApplicationByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application %s: %w", req.ApplicationID, err)
	}
	if !application.IsDecidable() {
		return nil, fmt.Errorf("application %s in status %s cannot be approved: %w", req.ApplicationID, application.Status, apperrors.ErrInvalidStateTransition)
	}

	product, err := s.productRepo.FindProductByID(ctx, application.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", application.ProductID, err)
	}
	if !product.AmountWithinBounds(req.ApprovedAmount) {
		return nil, fmt.Errorf("%w: approved amount %s outside [%s, %s]", apperrors.ErrOutOfBounds, req.ApprovedAmount, product.MinAmount, product.MaxAmount)
	}
	if !product.TermWithinBounds(req.ApprovedTerm) {
		return nil, fmt.Errorf("%w: approved term %d outside [%d, %d]", apperrors.ErrOutOfBounds, req.ApprovedTerm, product.MinTerm, product.MaxTerm)
	}

	figures, err := finance.CommitFigures(*product, req.ApprovedAmount, req.ApprovedTerm, req.ApprovedRate, req.InterestType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	loan := domain.Loan{
		LoanID:            uuid.NewString(),
		BorrowerID:        application.BorrowerID,
		ProductID:         application.ProductID,
		ApplicationID:     application.ApplicationID,
		PrincipalAmount:   req.ApprovedAmount,
		Term:              req.ApprovedTerm,
		TermPeriod:        product.TermPeriod,
		InterestRate:      req.ApprovedRate,
		InterestType:      req.InterestType,
		InterestAmount:    figures.Interest,
		FeesAmount:        figures.Fees,
		TotalAmount:       figures.Total,
		OutstandingAmount: figures.Total,
		Status:            domain.LoanApproved,
		Version:           1,
		AuditFields:       newAuditFields(req.ApproverID, now),
	}
	approval := domain.LoanApproval{
		ApprovalID:     uuid.NewString(),
		ApplicationID:  application.ApplicationID,
		ApprovedAmount: req.ApprovedAmount,
		ApprovedTerm:   req.ApprovedTerm,
		ApprovedRate:   req.ApprovedRate,
		Status:         domain.ReviewApproved,
		ApproverID:     req.ApproverID,
		Notes:          req.Notes,
		AuditFields:    newAuditFields(req.ApproverID, now),
	}
	application.Status = domain.ApplicationApproved
	application.LastUpdatedAt = now
	application.LastUpdatedBy = req.ApproverID

	if err := s.loanRepo.CreateLoanFromApproval(ctx, loan, approval, *application); err != nil {
		return nil, fmt.Errorf("failed to create loan from approval: %w", err)
	}

	logger.Info("Loan approved",
		slog.String("loan_id", loan.LoanID),
		slog.String("application_id", application.ApplicationID),
		slog.String("total_amount", loan.TotalAmount.String()))
	publishEvent(ctx, s.publisher, domain.EventLoanStatusChanged, &loan, loan.PrincipalAmount)
	return &loan, nil
}

// Disburse funds an approved loan, starting the clock on its term. The
// disbursement record's uniqueness guards against a double disbursement even
// when two callers race past the status check.
func (s *loanService) Disburse(ctx context.Context, req dto.DisburseRequest) (*domain.LoanDisbursement, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var disbursement domain.LoanDisbursement
	var disbursed domain.Loan
	err := retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
		}
		switch loan.Status {
		case domain.LoanApproved:
			// The only legal source state.
		case domain.LoanDisbursed, domain.LoanActive:
			return fmt.Errorf("loan %s: %w", req.LoanID, apperrors.ErrAlreadyDisbursed)
		default:
			return fmt.Errorf("loan %s in status %s cannot be disbursed: %w", req.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		start := req.Date
		end := finance.ExpectedEndDate(start, loan.Term, loan.TermPeriod)
		loan.StartDate = &start
		loan.ExpectedEndDate = &end
		if err := loan.TransitionTo(domain.LoanActive); err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = req.ActorID

		disbursement = domain.LoanDisbursement{
			DisbursementID: uuid.NewString(),
			LoanID:         loan.LoanID,
			Amount:         req.Amount,
			Method:         req.Method,
			ExternalRef:    req.ExternalRef,
			DisbursedAt:    req.Date,
			AuditFields:    newAuditFields(req.ActorID, now),
		}
		if err := s.loanRepo.DisburseLoan(ctx, *loan, expectedVersion, disbursement); err != nil {
			return err
		}
		disbursed = *loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromCtx(ctx).Info("Loan disbursed",
		slog.String("loan_id", disbursed.LoanID),
		slog.String("amount", disbursement.Amount.String()))
	publishEvent(ctx, s.publisher, domain.EventLoanDisbursed, &disbursed, disbursement.Amount)
	return &disbursement, nil
}

// GetLoanByID retrieves a single loan ledger.
func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return loan, nil
}

// ListLoansByBorrower retrieves a page of the borrower's loans.
func (s *loanService) ListLoansByBorrower(ctx context.Context, borrowerID string, params dto.ListParams) ([]domain.Loan, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	loans, nextToken, err := s.loanRepo.ListLoansByBorrower(ctx, borrowerID, limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nextToken, nil
}

// GetSchedule recomputes the loan's repayment schedule from its committed
// terms. Read-only and deterministic for an unchanged ledger.
func (s *loanService) GetSchedule(ctx context.Context, loanID string) ([]finance.SchedulePeriod, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	start := loan.CreatedAt
	if loan.StartDate != nil {
		start = *loan.StartDate
	}
	return finance.GenerateSchedule(loan.PrincipalAmount, loan.Term, loan.TermPeriod, loan.InterestRate, loan.InterestType, start)
}
