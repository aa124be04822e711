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

// defaultService implements the arrears lifecycle.
type defaultService struct {
	loanRepo    portsrepo.LoanRepositoryFacade
	defaultRepo portsrepo.DefaultRepositoryFacade
	publisher   portssvc.EventPublisher
	retries     int
}

// NewDefaultService creates the arrears service.
func NewDefaultService(loanRepo portsrepo.LoanRepositoryFacade, defaultRepo portsrepo.DefaultRepositoryFacade, publisher portssvc.EventPublisher, retries int) portssvc.DefaultSvcFacade {
	return &defaultService{
		loanRepo:    loanRepo,
		defaultRepo: defaultRepo,
		publisher:   publisher,
		retries:     retries,
	}
}

var _ portssvc.DefaultSvcFacade = (*defaultService)(nil)

// RecordDefault flags a serviceable loan as PENDING_DEFAULT with the amount in
// arrears. The loan keeps its balance; only the status moves until the default
// is confirmed or resolved.
func (s *defaultService) RecordDefault(ctx context.Context, req dto.RecordDefaultRequest) (*domain.LoanDefault, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: default amount must be positive", apperrors.ErrInvalidAmount)
	}

	var recorded domain.LoanDefault
	err := retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
		}
		if !loan.IsServiceable() {
			return fmt.Errorf("loan %s in status %s cannot default: %w", req.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
		}
		if req.Amount.GreaterThan(loan.OutstandingAmount) {
			return fmt.Errorf("%w: default amount %s exceeds outstanding %s on loan %s", apperrors.ErrInvalidAmount, req.Amount, loan.OutstandingAmount, req.LoanID)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		if err := loan.TransitionTo(domain.LoanPendingDefault); err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = req.ActorID

		recorded = domain.LoanDefault{
			DefaultID:     uuid.NewString(),
			LoanID:        req.LoanID,
			DefaultAmount: req.Amount,
			DefaultDate:   req.Date,
			Reason:        req.Reason,
			Status:        domain.DefaultActive,
			AuditFields:   newAuditFields(req.ActorID, now),
		}
		return s.loanRepo.ApplyDefault(ctx, *loan, expectedVersion, recorded)
	})
	if err != nil {
		return nil, err
	}

	logging.FromCtx(ctx).Info("Default recorded",
		slog.String("default_id", recorded.DefaultID),
		slog.String("loan_id", recorded.LoanID),
		slog.String("amount", recorded.DefaultAmount.String()))
	return &recorded, nil
}

// ConfirmDefault moves a pending default into DEFAULTED.
func (s *defaultService) ConfirmDefault(ctx context.Context, defaultID, actorID string) error {
	loanDefault, err := s.findActiveDefault(ctx, defaultID)
	if err != nil {
		return err
	}

	var confirmed domain.Loan
	err = retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, loanDefault.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", loanDefault.LoanID, err)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		if err := loan.TransitionTo(domain.LoanDefaulted); err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actorID

		loanDefault.LastUpdatedAt = now
		loanDefault.LastUpdatedBy = actorID
		if err := s.loanRepo.ApplyDefault(ctx, *loan, expectedVersion, *loanDefault); err != nil {
			return err
		}
		confirmed = *loan
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromCtx(ctx).Info("Default confirmed",
		slog.String("default_id", defaultID),
		slog.String("loan_id", confirmed.LoanID))
	publishEvent(ctx, s.publisher, domain.EventLoanDefaulted, &confirmed, loanDefault.DefaultAmount)
	return nil
}

// ResolveDefault returns the loan to ACTIVE and closes the default record.
// Works from either PENDING_DEFAULT or DEFAULTED.
func (s *defaultService) ResolveDefault(ctx context.Context, defaultID, actorID string) error {
	loanDefault, err := s.findActiveDefault(ctx, defaultID)
	if err != nil {
		return err
	}

	var resolved domain.Loan
	err = retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, loanDefault.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", loanDefault.LoanID, err)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		if err := loan.TransitionTo(domain.LoanActive); err != nil {
			return err
		}
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actorID

		loanDefault.Status = domain.DefaultResolved
		loanDefault.ResolvedAt = &now
		loanDefault.LastUpdatedAt = now
		loanDefault.LastUpdatedBy = actorID
		if err := s.loanRepo.ApplyDefault(ctx, *loan, expectedVersion, *loanDefault); err != nil {
			return err
		}
		resolved = *loan
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromCtx(ctx).Info("Default resolved",
		slog.String("default_id", defaultID),
		slog.String("loan_id", resolved.LoanID))
	publishEvent(ctx, s.publisher, domain.EventLoanStatusChanged, &resolved, loanDefault.DefaultAmount)
	return nil
}

// WriteOff terminates a DEFAULTED loan with no further repayment expected.
func (s *defaultService) WriteOff(ctx context.Context, defaultID, actorID string) error {
	loanDefault, err := s.findActiveDefault(ctx, defaultID)
	if err != nil {
		return err
	}

	var writtenOff domain.Loan
	err = retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByID(ctx, loanDefault.LoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", loanDefault.LoanID, err)
		}

		expectedVersion := loan.Version
		now := time.Now().UTC()
		if err := loan.TransitionTo(domain.LoanWrittenOff); err != nil {
			return err
		}
		loan.ActualEndDate = &now
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actorID

		loanDefault.Status = domain.DefaultWrittenOff
		loanDefault.WrittenOffAt = &now
		loanDefault.LastUpdatedAt = now
		loanDefault.LastUpdatedBy = actorID
		if err := s.loanRepo.ApplyDefault(ctx, *loan, expectedVersion, *loanDefault); err != nil {
			return err
		}
		writtenOff = *loan
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromCtx(ctx).Info("Loan written off",
		slog.String("default_id", defaultID),
		slog.String("loan_id", writtenOff.LoanID),
		slog.String("outstanding", writtenOff.OutstandingAmount.String()))
	publishEvent(ctx, s.publisher, domain.EventLoanStatusChanged, &writtenOff, writtenOff.OutstandingAmount)
	return nil
}

func (s *defaultService) findActiveDefault(ctx context.Context, defaultID string) (*domain.LoanDefault, error) {
	loanDefault, err := s.defaultRepo.FindDefaultByID(ctx, defaultID)
	if err != nil {
		return nil, fmt.Errorf("failed to find default %s: %w", defaultID, err)
	}
	if loanDefault.Status != domain.DefaultActive {
		return nil, fmt.Errorf("default %s in status %s is closed: %w", defaultID, loanDefault.Status, apperrors.ErrInvalidStateTransition)
	}
	return loanDefault, nil
}
