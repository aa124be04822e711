package mapping

import (
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/models"
)

// ToModelApplication converts a domain LoanApplication to a model LoanApplication
func ToModelApplication(d domain.LoanApplication) models.LoanApplication {
	return models.LoanApplication{
		ApplicationID:   d.ApplicationID,
		BorrowerID:      d.BorrowerID,
		ProductID:       d.ProductID,
		RequestedAmount: d.RequestedAmount,
		RequestedTerm:   d.RequestedTerm,
		Purpose:         d.Purpose,
		Status:          string(d.Status),
		ParentLoanID:    d.ParentLoanID,
		TakeoverLoanID:  d.TakeoverLoanID,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApplication converts a model LoanApplication to a domain LoanApplication
func ToDomainApplication(m models.LoanApplication) domain.LoanApplication {
	return domain.LoanApplication{
		ApplicationID:   m.ApplicationID,
		BorrowerID:      m.BorrowerID,
		ProductID:       m.ProductID,
		RequestedAmount: m.RequestedAmount,
		RequestedTerm:   m.RequestedTerm,
		Purpose:         m.Purpose,
		Status:          domain.ApplicationStatus(m.Status),
		ParentLoanID:    m.ParentLoanID,
		TakeoverLoanID:  m.TakeoverLoanID,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
