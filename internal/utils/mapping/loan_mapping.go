package mapping

import (
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/emkopo/employee_lending_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:            d.LoanID,
		BorrowerID:        d.BorrowerID,
		ProductID:         d.ProductID,
		ApplicationID:     d.ApplicationID,
		PrincipalAmount:   d.PrincipalAmount,
		Term:              d.Term,
		TermPeriod:        string(d.TermPeriod),
		InterestRate:      d.InterestRate,
		InterestType:      string(d.InterestType),
		InterestAmount:    d.InterestAmount,
		FeesAmount:        d.FeesAmount,
		TotalAmount:       d.TotalAmount,
		OutstandingAmount: d.OutstandingAmount,
		Status:            string(d.Status),
		StartDate:         d.StartDate,
		ExpectedEndDate:   d.ExpectedEndDate,
		ActualEndDate:     d.ActualEndDate,
		TakenOverFromID:   d.TakenOverFromID,
		TakenOverByID:     d.TakenOverByID,
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:            m.LoanID,
		BorrowerID:        m.BorrowerID,
		ProductID:         m.ProductID,
		ApplicationID:     m.ApplicationID,
		PrincipalAmount:   m.PrincipalAmount,
		Term:              m.Term,
		TermPeriod:        domain.TermPeriod(m.TermPeriod),
		InterestRate:      m.InterestRate,
		InterestType:      domain.InterestType(m.InterestType),
		InterestAmount:    m.InterestAmount,
		FeesAmount:        m.FeesAmount,
		TotalAmount:       m.TotalAmount,
		OutstandingAmount: m.OutstandingAmount,
		Status:            domain.LoanStatus(m.Status),
		StartDate:         m.StartDate,
		ExpectedEndDate:   m.ExpectedEndDate,
		ActualEndDate:     m.ActualEndDate,
		TakenOverFromID:   m.TakenOverFromID,
		TakenOverByID:     m.TakenOverByID,
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to a slice of domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}
