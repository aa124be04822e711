package services

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/core/finance"
	"github.com/emkopo/employee_lending_app/internal/dto"
)

// ApplicationSvcFacade exposes the application intake operations.
type ApplicationSvcFacade interface {
	SubmitApplication(ctx context.Context, req dto.SubmitApplicationRequest) (*domain.LoanApplication, error)
	RejectApplication(ctx context.Context, applicationID, reason, actorID string) error
	CancelApplication(ctx context.Context, applicationID, actorID string) error
	GetApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error)
}

// LoanSvcFacade exposes approval, disbursement and ledger reads.
type LoanSvcFacade interface {
	ApproveApplication(ctx context.Context, req dto.ApproveApplicationRequest) (*domain.Loan, error)
	Disburse(ctx context.Context, req dto.DisburseRequest) (*domain.LoanDisbursement, error)
	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	ListLoansByBorrower(ctx context.Context, borrowerID string, params dto.ListParams) ([]domain.Loan, *string, error)
	GetSchedule(ctx context.Context, loanID string) ([]finance.SchedulePeriod, error)
}

// RepaymentSvcFacade exposes repayment posting and the dual-trust approval queue.
type RepaymentSvcFacade interface {
	PostRepayment(ctx context.Context, req dto.PostRepaymentRequest) (*domain.LoanRepayment, error)
	ApproveRepayment(ctx context.Context, repaymentID, approverID string) error
	RejectRepayment(ctx context.Context, repaymentID, reason, actorID string) error
	ListRepaymentsByLoan(ctx context.Context, loanID string, params dto.ListParams) ([]domain.LoanRepayment, *string, error)
}

// RestructureSvcFacade exposes the restructure request/decision operations.
type RestructureSvcFacade interface {
	RequestRestructure(ctx context.Context, req dto.RequestRestructureRequest) (*domain.LoanRestructure, error)
	ApproveRestructure(ctx context.Context, restructureID, approverID string) error
	RejectRestructure(ctx context.Context, restructureID, reason, actorID string) error
}

// TakeoverSvcFacade exposes the takeover request/decision operations.
type TakeoverSvcFacade interface {
	RequestTakeover(ctx context.Context, req dto.RequestTakeoverRequest) (*domain.LoanTakeover, error)
	ApproveTakeover(ctx context.Context, takeoverID, approverID string) (*domain.Loan, error)
	RejectTakeover(ctx context.Context, takeoverID, reason, actorID string) error
}

// DefaultSvcFacade exposes the arrears lifecycle.
type DefaultSvcFacade interface {
	RecordDefault(ctx context.Context, req dto.RecordDefaultRequest) (*domain.LoanDefault, error)
	ConfirmDefault(ctx context.Context, defaultID, actorID string) error
	ResolveDefault(ctx context.Context, defaultID, actorID string) error
	WriteOff(ctx context.Context, defaultID, actorID string) error
}
