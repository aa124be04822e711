package mapping

import (
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/models"
)

// ToDomainProductTerms converts a model ProductTerms to a domain ProductTerms
func ToDomainProductTerms(m models.ProductTerms) domain.ProductTerms {
	return domain.ProductTerms{
		ProductID:         m.ProductID,
		ProviderID:        m.ProviderID,
		Name:              m.Name,
		InterestRate:      m.InterestRate,
		InterestType:      domain.InterestType(m.InterestType),
		TermPeriod:        domain.TermPeriod(m.TermPeriod),
		MinAmount:         m.MinAmount,
		MaxAmount:         m.MaxAmount,
		MinTerm:           m.MinTerm,
		MaxTerm:           m.MaxTerm,
		ProcessingFee:     m.ProcessingFee,
		ProcessingFeeType: domain.FeeType(m.ProcessingFeeType),
		InsuranceFee:      m.InsuranceFee,
		InsuranceFeeType:  domain.FeeType(m.InsuranceFeeType),
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
