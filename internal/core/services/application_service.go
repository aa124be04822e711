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

// applicationService implements application intake.
type applicationService struct {
	applicationRepo portsrepo.ApplicationRepositoryFacade
	productRepo     portsrepo.ProductRepositoryFacade
	borrowers       portssvc.BorrowerDirectory
}

// NewApplicationService creates the application intake service.
func NewApplicationService(applicationRepo portsrepo.ApplicationRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, borrowers portssvc.BorrowerDirectory) portssvc.ApplicationSvcFacade {
	return &applicationService{
		applicationRepo: applicationRepo,
		productRepo:     productRepo,
		borrowers:       borrowers,
	}
}

var _ portssvc.ApplicationSvcFacade = (*applicationService)(nil)

// SubmitApplication validates the request against the product's bounds and the
// one-open-chain rule, then records the application as SUBMITTED. The open
// chain check is advisory; the storage-level unique guard closes the race
// between two concurrent submissions.
func (s *applicationService) SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest) (*domain.LoanApplication, error) {
	logger := logging.FromCtx(ctx)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: requested amount must be positive", apperrors.ErrValidation)
	}

	if s.borrowers != nil {
		exists, err := s.borrowers.BorrowerExists(ctx, req.BorrowerID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up borrower %s: %w", req.BorrowerID, err)
		}
		if !exists {
			return nil, fmt.Errorf("borrower %s: %w", req.BorrowerID, apperrors.ErrNotFound)
		}
	}

	product, err := s.productRepo.FindProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", req.ProductID, err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is not open for applications", apperrors.ErrValidation, req.ProductID)
	}
	if !product.AmountWithinBounds(req.Amount) {
		return nil, fmt.Errorf("%w: amount %s outside [%s, %s]", apperrors.ErrOutOfBounds, req.Amount, product.MinAmount, product.MaxAmount)
	}
	if !product.TermWithinBounds(req.Term) {
		return nil, fmt.Errorf("%w: term %d outside [%d, %d]", apperrors.ErrOutOfBounds, req.Term, product.MinTerm, product.MaxTerm)
	}

	open, err := s.applicationRepo.ExistsOpenChain(ctx, req.BorrowerID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to check open applications: %w", err)
	}
	if open {
		return nil, fmt.Errorf("%w: borrower %s already has an open application or loan for product %s", apperrors.ErrDuplicate, req.BorrowerID, req.ProductID)
	}

	now := time.Now().UTC()
	application := domain.LoanApplication{
		ApplicationID:   uuid.NewString(),
		BorrowerID:      req.BorrowerID,
		ProductID:       req.ProductID,
		RequestedAmount: req.Amount,
		RequestedTerm:   req.Term,
		Purpose:         req.Purpose,
		Status:          domain.ApplicationSubmitted,
		ParentLoanID:    req.ParentLoanID,
		AuditFields:     newAuditFields(req.BorrowerID, now),
	}

	if err := s.applicationRepo.SaveApplication(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	logger.Info("Application submitted",
		slog.String("application_id", application.ApplicationID),
		slog.String("borrower_id", req.BorrowerID),
		slog.String("product_id", req.ProductID))
	return &application, nil
}

// RejectApplication records a terminal rejection of a decidable application.
func (s *applicationService) RejectApplication(ctx context.Context, applicationID, reason, actorID string) error {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	if !application.IsDecidable() {
		return fmt.Errorf("application %s in status %s cannot be rejected: %w", applicationID, application.Status, apperrors.ErrInvalidStateTransition)
	}

	now := time.Now().UTC()
	application.Status = domain.ApplicationRejected
	application.RejectionReason = reason
	application.LastUpdatedAt = now
	application.LastUpdatedBy = actorID

	if err := s.applicationRepo.UpdateApplication(ctx, *application); err != nil {
		return fmt.Errorf("failed to update application %s: %w", applicationID, err)
	}

	logging.FromCtx(ctx).Info("Application rejected", slog.String("application_id", applicationID))
	return nil
}

// CancelApplication lets the borrower withdraw an application that has not
// been decided yet.
func (s *applicationService) CancelApplication(ctx context.Context, applicationID, actorID string) error {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	switch application.Status {
	case domain.ApplicationApproved, domain.ApplicationRejected, domain.ApplicationCancelled:
		return fmt.Errorf("application %s in status %s cannot be cancelled: %w", applicationID, application.Status, apperrors.ErrInvalidStateTransition)
	}

	now := time.Now().UTC()
	application.Status = domain.ApplicationCancelled
	application.LastUpdatedAt = now
	application.LastUpdatedBy = actorID

	if err := s.applicationRepo.UpdateApplication(ctx, *application); err != nil {
		return fmt.Errorf("failed to update application %s: %w", applicationID, err)
	}

	logging.FromCtx(ctx).Info("Application cancelled", slog.String("application_id", applicationID))
	return nil
}

// GetApplicationByID retrieves a single application.
func (s *applicationService) GetApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	application, err := s.applicationRepo.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find application %s: %w", applicationID, err)
	}
	return application, nil
}
