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

// restructureService implements term/rate renegotiation on a live loan.
type restructureService struct {
	loanRepo        portsrepo.LoanRepositoryFacade
	restructureRepo portsrepo.RestructureRepositoryFacade
	publisher       portssvc.EventPublisher
	retries         int
}

// NewRestructureService creates the restructure service.
func NewRestructureService(loanRepo portsrepo.LoanRepositoryFacade, restructureRepo portsrepo.RestructureRepositoryFacade, publisher portssvc.EventPublisher, retries int) portssvc.RestructureSvcFacade {
	return &restructureService{
		loanRepo:        loanRepo,
		restructureRepo: restructureRepo,
		publisher:       publisher,
		retries:         retries,
	}
}

var _ portssvc.RestructureSvcFacade = (*restructureService)(nil)

// RequestRestructure re-amortizes the loan's outstanding principal over new
// term/rate. A privileged actor's request is applied to the ledger in the same
// operation; anyone else's request waits PENDING for a decision.
func (s *restructureService) RequestRestructure(ctx context.Context, req dto.RequestRestructureRequest) (*domain.LoanRestructure, error) {
	logger := logging.FromCtx(ctx)

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
	}
	if !loan.IsServiceable() {
		return nil, fmt.Errorf("loan %s in status %s cannot be restructured: %w", req.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
	}

	figures, err := restructureFigures(loan, req.NewTerm, req.NewRate, req.NewInterestType)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	restructure := domain.LoanRestructure{
		RestructureID:        uuid.NewString(),
		LoanID:               req.LoanID,
		OutstandingPrincipal: figures.OutstandingPrincipal,
		NewTerm:              req.NewTerm,
		NewRate:              req.NewRate,
		NewInterestType:      req.NewInterestType,
		NewInterestAmount:    figures.Interest,
		NewTotalAmount:       figures.Total,
		Status:               domain.ReviewPending,
		AuditFields:          newAuditFields(req.ActorID, now),
	}

	if !req.ActorIsPrivileged {
		if err := s.restructureRepo.SaveRestructure(ctx, restructure); err != nil {
			return nil, fmt.Errorf("failed to save restructure request: %w", err)
		}
		logger.Info("Restructure recorded pending approval",
			slog.String("restructure_id", restructure.RestructureID),
			slog.String("loan_id", req.LoanID))
		return &restructure, nil
	}

	applied, err := s.apply(ctx, &restructure, req.ActorID)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.publisher, domain.EventLoanRestructured, applied, restructure.NewTotalAmount)
	return &restructure, nil
}

// ApproveRestructure applies a pending restructure to the ledger. The figures
// are recomputed from the loan's current balance; the balance may have moved
// since the request was stored.
func (s *restructureService) ApproveRestructure(ctx context.Context, restructureID, approverID string) error {
	restructure, err := s.restructureRepo.FindRestructureByID(ctx, restructureID)
	if err != nil {
		return fmt.Errorf("failed to find restructure %s: %w", restructureID, err)
	}
	if restructure.Status != domain.ReviewPending {
		return fmt.Errorf("restructure %s in status %s cannot be approved: %w", restructureID, restructure.Status, apperrors.ErrInvalidStateTransition)
	}

	applied, err := s.apply(ctx, restructure, approverID)
	if err != nil {
		return err
	}
	publishEvent(ctx, s.publisher, domain.EventLoanRestructured, applied, restructure.NewTotalAmount)
	return nil
}

// RejectRestructure discards a pending restructure without touching the ledger.
func (s *restructureService) RejectRestructure(ctx context.Context, restructureID, reason, actorID string) error {
	restructure, err := s.restructureRepo.FindRestructureByID(ctx, restructureID)
	if err != nil {
		return fmt.Errorf("failed to find restructure %s: %w", restructureID, err)
	}
	if restructure.Status != domain.ReviewPending {
		return fmt.Errorf("restructure %s in status %s cannot be rejected: %w", restructureID, restructure.Status, apperrors.ErrInvalidStateTransition)
	}

	now := time.Now().UTC()
	restructure.Status = domain.ReviewRejected
	restructure.RejectReason = reason
	restructure.LastUpdatedAt = now
	restructure.LastUpdatedBy = actorID

	if err := s.restructureRepo.UpdateRestructure(ctx, *restructure); err != nil {
		return fmt.Errorf("failed to update restructure %s: %w", restructureID, err)
	}
	logging.FromCtx(ctx).Info("Restructure rejected", slog.String("restructure_id", restructureID))
	return nil
}

// apply mutates the ledger in place for an approved restructure. Figures are
// recomputed against the current ledger on every attempt.
func (s *restructureService) apply(ctx context.Context, restructure *domain.LoanRestructure, actorID string) (*domain.Loan, error) {
	var applied domain.Loan
	err := retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, restructure.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", restructure.LoanID, err)
		}

		figures, err := restructureFigures(loan, restructure.NewTerm, restructure.NewRate, restructure.NewInterestType)
		if err != nil {
			return err
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		mutation := domain.InPlaceAdjustment{
			NewTerm:           restructure.NewTerm,
			NewRate:           restructure.NewRate,
			NewInterestType:   restructure.NewInterestType,
			NewInterestAmount: figures.Interest,
			NewTotalAmount:    figures.Total,
			NewOutstanding:    figures.Total,
		}
		if err := mutation.ApplyTo(loan, now); err != nil {
			return err
		}
		loan.LastUpdatedBy = actorID

		restructure.NewInterestAmount = figures.Interest
		restructure.NewTotalAmount = figures.Total
		restructure.Status = domain.ReviewApproved
		restructure.DecidedBy = actorID
		restructure.LastUpdatedAt = now
		restructure.LastUpdatedBy = actorID
		if err := s.loanRepo.ApplyRestructure(ctx, *loan, expectedVersion, *restructure); err != nil {
			return err
		}
		applied = *loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromCtx(ctx).Info("Loan restructured",
		slog.String("loan_id", applied.LoanID),
		slog.Int("new_term", applied.Term),
		slog.String("new_total", applied.TotalAmount.String()))
	return &applied, nil
}

// restructuredFigures holds the re-amortized numbers for a restructure.
type restructuredFigures struct {
	OutstandingPrincipal decimal.Decimal
	Interest             decimal.Decimal
	Total                decimal.Decimal
}

// restructureFigures strips remaining interest out of the outstanding balance
// and re-amortizes the surviving principal over the new terms.
func restructureFigures(loan *domain.Loan, newTerm int, newRate decimal.Decimal, newType domain.InterestType) (restructuredFigures, error) {
	outstandingPrincipal := loan.OutstandingPrincipal()
	interest, err := finance.CalculateInterest(outstandingPrincipal, newTerm, loan.TermPeriod, newRate, newType)
	if err != nil {
		return restructuredFigures{}, err
	}
	return restructuredFigures{
		OutstandingPrincipal: outstandingPrincipal,
		Interest:             interest,
		Total:                outstandingPrincipal.Add(interest).Round(2),
	}, nil
}
