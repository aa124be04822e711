package dto

import (
	"time"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestRestructureRequest renegotiates term/rate on an existing loan.
type RequestRestructureRequest struct {
	LoanID            string              `json:"loanID" validate:"required"`
	NewTerm           int                 `json:"newTerm" validate:"required,gt=0"`
	NewRate           decimal.Decimal     `json:"newRate"`
	NewInterestType   domain.InterestType `json:"newInterestType" validate:"required,oneof=FLAT REDUCING_BALANCE"`
	ActorID           string              `json:"actorID" validate:"required"`
	ActorIsPrivileged bool                `json:"actorIsPrivileged"`
}

// RequestTakeoverRequest moves a loan to a new product/provider, optionally
// adding cash on top of the carried-over principal.
type RequestTakeoverRequest struct {
	LoanID            string          `json:"loanID" validate:"required"`
	NewProductID      string          `json:"newProductID" validate:"required"`
	AdditionalAmount  decimal.Decimal `json:"additionalAmount"`
	NewTerm           int             `json:"newTerm" validate:"required,gt=0"`
	ActorID           string          `json:"actorID" validate:"required"`
	ActorIsPrivileged bool            `json:"actorIsPrivileged"`
}

// RecordDefaultRequest records a loan crossing into arrears.
type RecordDefaultRequest struct {
	LoanID  string          `json:"loanID" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Date    time.Time       `json:"date" validate:"required"`
	Reason  string          `json:"reason"`
	ActorID string          `json:"actorID" validate:"required"`
}
