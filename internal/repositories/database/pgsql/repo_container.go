package pgsql

import (
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	applicationRepo := newPgxApplicationRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	repaymentRepo := newPgxRepaymentRepository(dbPool)
	restructureRepo := newPgxRestructureRepository(dbPool)
	takeoverRepo := newPgxTakeoverRepository(dbPool)
	defaultRepo := newPgxDefaultRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Product:     productRepo,
		Application: applicationRepo,
		Loan:        loanRepo,
		Repayment:   repaymentRepo,
		Restructure: restructureRepo,
		Takeover:    takeoverRepo,
		Default:     defaultRepo,
	}
}
