package services

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// EventPublisher is the sink for domain events consumed by the notification,
// audit and reporting collaborators. Publishing is fire-and-forget: the ledger
// mutation has already committed by the time Publish is called, and a publish
// failure must never be propagated back into the operation result.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.LoanEvent)
}

// BorrowerDirectory is the read-only lookup into the employee/borrower
// profile store owned by an excluded collaborator.
type BorrowerDirectory interface {
	BorrowerExists(ctx context.Context, borrowerID string) (bool, error)
}
