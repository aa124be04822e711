package domain

import "github.com/shopspring/decimal"

// LoanApproval is the immutable record of a decision on an application. The
// approved figures may differ from the requested ones; the loan is committed
// on the approved figures.
type LoanApproval struct {
	ApprovalID     string          `json:"approvalID"`
	ApplicationID  string          `json:"applicationID"`
	ApprovedAmount decimal.Decimal `json:"approvedAmount"`
	ApprovedTerm   int             `json:"approvedTerm"`
	ApprovedRate   decimal.Decimal `json:"approvedRate"`
	Status         ReviewStatus    `json:"status"` // APPROVED or REJECTED
	ApproverID     string          `json:"approverID"`
	Notes          string          `json:"notes"`
	AuditFields
}
