package mapping

import (
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/models"
)

// ToModelApproval converts a domain LoanApproval to a model LoanApproval
func ToModelApproval(d domain.LoanApproval) models.LoanApproval {
	return models.LoanApproval{
		ApprovalID:     d.ApprovalID,
		ApplicationID:  d.ApplicationID,
		ApprovedAmount: d.ApprovedAmount,
		ApprovedTerm:   d.ApprovedTerm,
		ApprovedRate:   d.ApprovedRate,
		Status:         string(d.Status),
		ApproverID:     d.ApproverID,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelDisbursement converts a domain LoanDisbursement to a model LoanDisbursement
func ToModelDisbursement(d domain.LoanDisbursement) models.LoanDisbursement {
	return models.LoanDisbursement{
		DisbursementID: d.DisbursementID,
		LoanID:         d.LoanID,
		Amount:         d.Amount,
		Method:         d.Method,
		ExternalRef:    d.ExternalRef,
		DisbursedAt:    d.DisbursedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToModelRestructure converts a domain LoanRestructure to a model LoanRestructure
func ToModelRestructure(d domain.LoanRestructure) models.LoanRestructure {
	return models.LoanRestructure{
		RestructureID:        d.RestructureID,
		LoanID:               d.LoanID,
		OutstandingPrincipal: d.OutstandingPrincipal,
		NewTerm:              d.NewTerm,
		NewRate:              d.NewRate,
		NewInterestType:      string(d.NewInterestType),
		NewInterestAmount:    d.NewInterestAmount,
		NewTotalAmount:       d.NewTotalAmount,
		Status:               string(d.Status),
		DecidedBy:            d.DecidedBy,
		RejectReason:         d.RejectReason,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRestructure converts a model LoanRestructure to a domain LoanRestructure
func ToDomainRestructure(m models.LoanRestructure) domain.LoanRestructure {
	return domain.LoanRestructure{
		RestructureID:        m.RestructureID,
		LoanID:               m.LoanID,
		OutstandingPrincipal: m.OutstandingPrincipal,
		NewTerm:              m.NewTerm,
		NewRate:              m.NewRate,
		NewInterestType:      domain.InterestType(m.NewInterestType),
		NewInterestAmount:    m.NewInterestAmount,
		NewTotalAmount:       m.NewTotalAmount,
		Status:               domain.ReviewStatus(m.Status),
		DecidedBy:            m.DecidedBy,
		RejectReason:         m.RejectReason,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTakeover converts a domain LoanTakeover to a model LoanTakeover
func ToModelTakeover(d domain.LoanTakeover) models.LoanTakeover {
	return models.LoanTakeover{
		TakeoverID:           d.TakeoverID,
		SourceLoanID:         d.SourceLoanID,
		NewProductID:         d.NewProductID,
		OutstandingPrincipal: d.OutstandingPrincipal,
		AdditionalAmount:     d.AdditionalAmount,
		NewTerm:              d.NewTerm,
		NewLoanID:            d.NewLoanID,
		Status:               string(d.Status),
		DecidedBy:            d.DecidedBy,
		RejectReason:         d.RejectReason,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTakeover converts a model LoanTakeover to a domain LoanTakeover
func ToDomainTakeover(m models.LoanTakeover) domain.LoanTakeover {
	return domain.LoanTakeover{
		TakeoverID:           m.TakeoverID,
		SourceLoanID:         m.SourceLoanID,
		NewProductID:         m.NewProductID,
		OutstandingPrincipal: m.OutstandingPrincipal,
		AdditionalAmount:     m.AdditionalAmount,
		NewTerm:              m.NewTerm,
		NewLoanID:            m.NewLoanID,
		Status:               domain.ReviewStatus(m.Status),
		DecidedBy:            m.DecidedBy,
		RejectReason:         m.RejectReason,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDefault converts a domain LoanDefault to a model LoanDefault
func ToModelDefault(d domain.LoanDefault) models.LoanDefault {
	return models.LoanDefault{
		DefaultID:     d.DefaultID,
		LoanID:        d.LoanID,
		DefaultAmount: d.DefaultAmount,
		DefaultDate:   d.DefaultDate,
		Reason:        d.Reason,
		Status:        string(d.Status),
		ResolvedAt:    d.ResolvedAt,
		WrittenOffAt:  d.WrittenOffAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDefault converts a model LoanDefault to a domain LoanDefault
func ToDomainDefault(m models.LoanDefault) domain.LoanDefault {
	return domain.LoanDefault{
		DefaultID:     m.DefaultID,
		LoanID:        m.LoanID,
		DefaultAmount: m.DefaultAmount,
		DefaultDate:   m.DefaultDate,
		Reason:        m.Reason,
		Status:        domain.DefaultStatus(m.Status),
		ResolvedAt:    m.ResolvedAt,
		WrittenOffAt:  m.WrittenOffAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
