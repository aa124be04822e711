package dto

import (
	"time"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApproveApplicationRequest carries the approver's (possibly adjusted)
// committed figures. The loan is created on these, never the requested ones.
type ApproveApplicationRequest struct {
	ApplicationID  string              `json:"applicationID" validate:"required"`
	ApproverID     string              `json:"approverID" validate:"required"`
	ApprovedAmount decimal.Decimal     `json:"approvedAmount" validate:"required"`
	ApprovedTerm   int                 `json:"approvedTerm" validate:"required,gt=0"`
	ApprovedRate   decimal.Decimal     `json:"approvedRate"`
	InterestType   domain.InterestType `json:"interestType" validate:"required,oneof=FLAT REDUCING_BALANCE"`
	Notes          string              `json:"notes"`
}

// DisburseRequest records the funding of an approved loan.
type DisburseRequest struct {
	LoanID      string          `json:"loanID" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Method      string          `json:"method" validate:"required"`
	ExternalRef string          `json:"externalRef"`
	Date        time.Time       `json:"date" validate:"required"`
	ActorID     string          `json:"actorID" validate:"required"`
}
