package domain

import "github.com/shopspring/decimal"

// ApplicationStatus is the state of a loan application.
type ApplicationStatus string

const (
	ApplicationPending       ApplicationStatus = "PENDING"
	ApplicationSubmitted     ApplicationStatus = "SUBMITTED"
	ApplicationUnderReview   ApplicationStatus = "UNDER_REVIEW"
	ApplicationInfoRequested ApplicationStatus = "INFO_REQUESTED"
	ApplicationApproved      ApplicationStatus = "APPROVED"
	ApplicationRejected      ApplicationStatus = "REJECTED"
	ApplicationCancelled     ApplicationStatus = "CANCELLED"
)

// LoanApplication is a borrower's request for a loan against a product.
// Terminal in APPROVED, REJECTED and CANCELLED.
type LoanApplication struct {
	ApplicationID   string            `json:"applicationID"`
	BorrowerID      string            `json:"borrowerID"`
	ProductID       string            `json:"productID"`
	RequestedAmount decimal.Decimal   `json:"requestedAmount"`
	RequestedTerm   int               `json:"requestedTerm"`
	Purpose         string            `json:"purpose"`
	Status          ApplicationStatus `json:"status"`
	ParentLoanID    *string           `json:"parentLoanID"`    // Set for top-up applications
	TakeoverLoanID  *string           `json:"takeoverLoanID"`  // Set when the application originates from a takeover
	RejectionReason string            `json:"rejectionReason"` // Populated on REJECTED
	AuditFields
}

// IsOpen reports whether the application still occupies the borrower's
// application-to-active-loan chain for the product.
func (a LoanApplication) IsOpen() bool {
	switch a.Status {
	case ApplicationRejected, ApplicationCancelled:
		return false
	}
	return true
}

// IsDecidable reports whether an approval or rejection may be recorded.
func (a LoanApplication) IsDecidable() bool {
	return a.Status == ApplicationSubmitted || a.Status == ApplicationUnderReview
}
