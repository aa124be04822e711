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

// takeoverService implements moving a loan to a new product/provider.
type takeoverService struct {
	loanRepo     portsrepo.LoanRepositoryFacade
	takeoverRepo portsrepo.TakeoverRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	publisher    portssvc.EventPublisher
	retries      int
}

// NewTakeoverService creates the takeover service.
func NewTakeoverService(loanRepo portsrepo.LoanRepositoryFacade, takeoverRepo portsrepo.TakeoverRepositoryFacade, productRepo portsrepo.ProductRepositoryFacade, publisher portssvc.EventPublisher, retries int) portssvc.TakeoverSvcFacade {
	return &takeoverService{
		loanRepo:     loanRepo,
		takeoverRepo: takeoverRepo,
		productRepo:  productRepo,
		publisher:    publisher,
		retries:      retries,
	}
}

var _ portssvc.TakeoverSvcFacade = (*takeoverService)(nil)

// RequestTakeover validates the carried-over principal plus additional cash
// against the target product's bounds. A privileged actor's request closes the
// source loan and opens the successor in the same operation; anyone else's
// request waits PENDING.
func (s *takeoverService) RequestTakeover(ctx context.Context, req dto.RequestTakeoverRequest) (*domain.LoanTakeover, error) {
	logger := logging.FromCtx(ctx)

	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.AdditionalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: additional amount must not be negative", apperrors.ErrValidation)
	}

	loan, err := s.loanRepo.FindLoanByID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to find loan %s: %w", req.LoanID, err)
	}
	if !loan.IsServiceable() {
		return nil, fmt.Errorf("loan %s in status %s cannot be taken over: %w", req.LoanID, loan.Status, apperrors.ErrInvalidStateTransition)
	}

	product, err := s.productRepo.FindProductByID(ctx, req.NewProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", req.NewProductID, err)
	}
	outstandingPrincipal := loan.OutstandingPrincipal()
	if err := validateTakeoverBounds(product, outstandingPrincipal.Add(req.AdditionalAmount), req.NewTerm); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	takeover := domain.LoanTakeover{
		TakeoverID:           uuid.NewString(),
		SourceLoanID:         req.LoanID,
		NewProductID:         req.NewProductID,
		OutstandingPrincipal: outstandingPrincipal,
		AdditionalAmount:     req.AdditionalAmount,
		NewTerm:              req.NewTerm,
		Status:               domain.ReviewPending,
		AuditFields:          newAuditFields(req.ActorID, now),
	}

	if !req.ActorIsPrivileged {
		if err := s.takeoverRepo.SaveTakeover(ctx, takeover); err != nil {
			return nil, fmt.Errorf("failed to save takeover request: %w", err)
		}
		logger.Info("Takeover recorded pending approval",
			slog.String("takeover_id", takeover.TakeoverID),
			slog.String("loan_id", req.LoanID))
		return &takeover, nil
	}

	if _, err := s.apply(ctx, &takeover, req.ActorID); err != nil {
		return nil, err
	}
	return &takeover, nil
}

// ApproveTakeover applies a pending takeover, returning the successor loan.
func (s *takeoverService) ApproveTakeover(ctx context.Context, takeoverID, approverID string) (*domain.Loan, error) {
	takeover, err := s.takeoverRepo.FindTakeoverByID(ctx, takeoverID)
	if err != nil {
		return nil, fmt.Errorf("failed to find takeover %s: %w", takeoverID, err)
	}
	if takeover.Status != domain.ReviewPending {
		return nil, fmt.Errorf("takeover %s in status %s cannot be approved: %w", takeoverID, takeover.Status, apperrors.ErrInvalidStateTransition)
	}
	return s.apply(ctx, takeover, approverID)
}

// RejectTakeover discards a pending takeover without touching the ledger.
func (s *takeoverService) RejectTakeover(ctx context.Context, takeoverID, reason, actorID string) error {
	takeover, err := s.takeoverRepo.FindTakeoverByID(ctx, takeoverID)
	if err != nil {
		return fmt.Errorf("failed to find takeover %s: %w", takeoverID, err)
	}
	if takeover.Status != domain.ReviewPending {
		return fmt.Errorf("takeover %s in status %s cannot be rejected: %w", takeoverID, takeover.Status, apperrors.ErrInvalidStateTransition)
	}

	now := time.Now().UTC()
	takeover.Status = domain.ReviewRejected
	takeover.RejectReason = reason
	takeover.LastUpdatedAt = now
	takeover.LastUpdatedBy = actorID

	if err := s.takeoverRepo.UpdateTakeover(ctx, *takeover); err != nil {
		return fmt.Errorf("failed to update takeover %s: %w", takeoverID, err)
	}
	logging.FromCtx(ctx).Info("Takeover rejected", slog.String("takeover_id", takeoverID))
	return nil
}

// apply closes the source loan and creates the successor atomically. The
// carried-over principal is recomputed from the source ledger's current
// balance on every attempt; the two records end up cross-linked by
// back-reference only.
func (s *takeoverService) apply(ctx context.Context, takeover *domain.LoanTakeover, actorID string) (*domain.Loan, error) {
	product, err := s.productRepo.FindProductByID(ctx, takeover.NewProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", takeover.NewProductID, err)
	}

	var successor domain.Loan
	var closed domain.Loan
	err = retryOnConflict(ctx, s.retries, func(ctx context.Context) error {
		source, err := s.loanRepo.FindLoanByID(ctx, takeover.SourceLoanID)
		if err != nil {
			return fmt.Errorf("failed to find loan %s: %w", takeover.SourceLoanID, err)
		}
		if !source.IsServiceable() {
			return fmt.Errorf("loan %s in status %s cannot be taken over: %w", source.LoanID, source.Status, apperrors.ErrInvalidStateTransition)
		}

		outstandingPrincipal := source.OutstandingPrincipal()
		totalPrincipal := outstandingPrincipal.Add(takeover.AdditionalAmount)
		if err := validateTakeoverBounds(product, totalPrincipal, takeover.NewTerm); err != nil {
			return err
		}

		figures, err := finance.CommitFigures(*product, totalPrincipal, takeover.NewTerm, product.InterestRate, product.InterestType)
		if err != nil {
			return err
		}

		expectedVersion := source.Version
		now := time.Now().UTC()
		start := now
		end := finance.ExpectedEndDate(start, takeover.NewTerm, product.TermPeriod)
		sourceID := source.LoanID
		successor = domain.Loan{
			LoanID:            uuid.NewString(),
			BorrowerID:        source.BorrowerID,
			ProductID:         takeover.NewProductID,
			ApplicationID:     source.ApplicationID,
			PrincipalAmount:   totalPrincipal,
			Term:              takeover.NewTerm,
			TermPeriod:        product.TermPeriod,
			InterestRate:      product.InterestRate,
			InterestType:      product.InterestType,
			InterestAmount:    figures.Interest,
			FeesAmount:        figures.Fees,
			TotalAmount:       figures.Total,
			OutstandingAmount: figures.Total,
			Status:            domain.LoanActive,
			StartDate:         &start,
			ExpectedEndDate:   &end,
			TakenOverFromID:   &sourceID,
			Version:           1,
			AuditFields:       newAuditFields(actorID, now),
		}

		if err := (domain.SupersedeWithNewLedger{SuccessorLoanID: successor.LoanID}).ApplyTo(source, now); err != nil {
			return err
		}
		source.LastUpdatedBy = actorID

		takeover.OutstandingPrincipal = outstandingPrincipal
		takeover.NewLoanID = &successor.LoanID
		takeover.Status = domain.ReviewApproved
		takeover.DecidedBy = actorID
		takeover.LastUpdatedAt = now
		takeover.LastUpdatedBy = actorID
		if err := s.loanRepo.ApplyTakeover(ctx, *source, expectedVersion, successor, *takeover); err != nil {
			return err
		}
		closed = *source
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.FromCtx(ctx).Info("Loan taken over",
		slog.String("source_loan_id", closed.LoanID),
		slog.String("new_loan_id", successor.LoanID),
		slog.String("new_principal", successor.PrincipalAmount.String()))
	publishEvent(ctx, s.publisher, domain.EventLoanTakenOver, &closed, successor.PrincipalAmount)
	publishEvent(ctx, s.publisher, domain.EventLoanStatusChanged, &successor, successor.PrincipalAmount)
	return &successor, nil
}

func validateTakeoverBounds(product *domain.ProductTerms, principal decimal.Decimal, term int) error {
	if !product.AmountWithinBounds(principal) {
		return fmt.Errorf("%w: takeover principal %s outside [%s, %s]", apperrors.ErrOutOfBounds, principal, product.MinAmount, product.MaxAmount)
	}
	if !product.TermWithinBounds(term) {
		return fmt.Errorf("%w: takeover term %d outside [%d, %d]", apperrors.ErrOutOfBounds, term, product.MinTerm, product.MaxTerm)
	}
	return nil
}
