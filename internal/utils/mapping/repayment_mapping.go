package mapping

import (
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/models"
)

// ToModelRepayment converts a domain LoanRepayment to a model LoanRepayment
func ToModelRepayment(d domain.LoanRepayment) models.LoanRepayment {
	return models.LoanRepayment{
		RepaymentID:  d.RepaymentID,
		LoanID:       d.LoanID,
		Amount:       d.Amount,
		PaymentDate:  d.PaymentDate,
		Method:       d.Method,
		Reference:    d.Reference,
		Status:       string(d.Status),
		ProcessedAt:  d.ProcessedAt,
		RejectReason: d.RejectReason,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRepayment converts a model LoanRepayment to a domain LoanRepayment
func ToDomainRepayment(m models.LoanRepayment) domain.LoanRepayment {
	return domain.LoanRepayment{
		RepaymentID:  m.RepaymentID,
		LoanID:       m.LoanID,
		Amount:       m.Amount,
		PaymentDate:  m.PaymentDate,
		Method:       m.Method,
		Reference:    m.Reference,
		Status:       domain.RepaymentStatus(m.Status),
		ProcessedAt:  m.ProcessedAt,
		RejectReason: m.RejectReason,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRepaymentSlice converts a slice of model LoanRepayments to domain ones
func ToDomainRepaymentSlice(ms []models.LoanRepayment) []domain.LoanRepayment {
	ds := make([]domain.LoanRepayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRepayment(m)
	}
	return ds
}
