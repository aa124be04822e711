package dto

import "github.com/shopspring/decimal"

// SubmitApplicationRequest carries a borrower's loan request.
type SubmitApplicationRequest struct {
	BorrowerID   string          `json:"borrowerID" validate:"required"`
	ProductID    string          `json:"productID" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	Term         int             `json:"term" validate:"required,gt=0"`
	Purpose      string          `json:"purpose"`
	ParentLoanID *string         `json:"parentLoanID"` // Top-up applications reference the loan being topped up
}

// ListParams holds token pagination parameters shared by list operations.
type ListParams struct {
	Limit     int     `json:"limit"`
	NextToken *string `json:"nextToken"`
}
