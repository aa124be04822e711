package models

import "github.com/shopspring/decimal"

// LoanApproval is the persisted approval decision row.
type LoanApproval struct {
	ApprovalID     string          `db:"approval_id"`
	ApplicationID  string          `db:"application_id"`
	ApprovedAmount decimal.Decimal `db:"approved_amount"`
	ApprovedTerm   int             `db:"approved_term"`
	ApprovedRate   decimal.Decimal `db:"approved_rate"`
	Status         string          `db:"status"`
	ApproverID     string          `db:"approver_id"`
	Notes          string          `db:"notes"`
	AuditFields
}
