package services

import (
	portsrepo "github.com/emkopo/employee_lending_app/internal/core/ports/repositories"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Application portssvc.ApplicationSvcFacade
	Loan        portssvc.LoanSvcFacade
	Repayment   portssvc.RepaymentSvcFacade
	Restructure portssvc.RestructureSvcFacade
	Takeover    portssvc.TakeoverSvcFacade
	Default     portssvc.DefaultSvcFacade
}

// NewContainer creates a new service container with properly initialized
// dependencies. publisher and borrowers may be nil; the services treat absent
// collaborators as no-ops.
func NewContainer(repos *portsrepo.RepositoryProvider, publisher portssvc.EventPublisher, borrowers portssvc.BorrowerDirectory, retries int) *Container {
	return &Container{
		Application: NewApplicationService(repos.Application, repos.Product, borrowers),
		Loan:        NewLoanService(repos.Loan, repos.Application, repos.Product, publisher, retries),
		Repayment:   NewRepaymentService(repos.Loan, repos.Repayment, publisher, retries),
		Restructure: NewRestructureService(repos.Loan, repos.Restructure, publisher, retries),
		Takeover:    NewTakeoverService(repos.Loan, repos.Takeover, repos.Product, publisher, retries),
		Default:     NewDefaultService(repos.Loan, repos.Default, publisher, retries),
	}
}
