package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
	"github.com/emkopo/employee_lending_app/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultListLimit bounds list operations when the caller provides none.
const defaultListLimit = 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the request DTO through the shared validator and maps
// failures onto the validation sentinel.
func validateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// retryOnConflict re-runs fn while it loses the optimistic concurrency race
// on the loan row. fn must re-read the ledger on every attempt so each retry
// computes from current values. The last conflict error is surfaced when the
// attempts run out.
func retryOnConflict(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = fn(ctx)
		if !errors.Is(err, apperrors.ErrConcurrentModification) {
			return err
		}
		logging.FromCtx(ctx).Debug("Ledger mutation lost concurrency race, retrying", slog.Int("attempt", i+1))
	}
	return err
}

// publishEvent hands a domain event to the sink. The ledger mutation has
// already committed; failures are the publisher's problem, never the caller's.
func publishEvent(ctx context.Context, publisher portssvc.EventPublisher, eventType domain.EventType, loan *domain.Loan, amount decimal.Decimal) {
	if publisher == nil {
		return
	}
	publisher.Publish(ctx, domain.LoanEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		LoanID:      loan.LoanID,
		BorrowerID:  loan.BorrowerID,
		Status:      loan.Status,
		Outstanding: loan.OutstandingAmount,
		Amount:      amount,
		OccurredAt:  time.Now().UTC(),
	})
}

func newAuditFields(actorID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorID,
	}
}
