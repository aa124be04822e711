package repositories

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
)

// RestructureReader defines read operations for restructure requests.
type RestructureReader interface {
	FindRestructureByID(ctx context.Context, restructureID string) (*domain.LoanRestructure, error)
}

// RestructureWriter persists restructure requests that have not (yet) touched
// the ledger. Applying an approved restructure goes through
// LoanWriter.ApplyRestructure.
type RestructureWriter interface {
	SaveRestructure(ctx context.Context, restructure domain.LoanRestructure) error
	UpdateRestructure(ctx context.Context, restructure domain.LoanRestructure) error
}

// RestructureRepositoryFacade combines the restructure repository interfaces.
type RestructureRepositoryFacade interface {
	RestructureReader
	RestructureWriter
}

// TakeoverReader defines read operations for takeover requests.
type TakeoverReader interface {
	FindTakeoverByID(ctx context.Context, takeoverID string) (*domain.LoanTakeover, error)
}

// TakeoverWriter persists takeover requests that have not (yet) touched the
// ledger. Applying an approved takeover goes through LoanWriter.ApplyTakeover.
type TakeoverWriter interface {
	SaveTakeover(ctx context.Context, takeover domain.LoanTakeover) error
	UpdateTakeover(ctx context.Context, takeover domain.LoanTakeover) error
}

// TakeoverRepositoryFacade combines the takeover repository interfaces.
type TakeoverRepositoryFacade interface {
	TakeoverReader
	TakeoverWriter
}

// DefaultReader defines read operations for recorded defaults.
type DefaultReader interface {
	FindDefaultByID(ctx context.Context, defaultID string) (*domain.LoanDefault, error)
}

// DefaultRepositoryFacade combines the default repository interfaces. Defaults
// are only ever written together with their loan (LoanWriter.ApplyDefault).
type DefaultRepositoryFacade interface {
	DefaultReader
}
