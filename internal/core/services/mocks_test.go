package services_test

import (
	"context"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ProductRepository ---

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.ProductTerms, error) {
	args := m.Called(ctx, productID)
	var product *domain.ProductTerms
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.ProductTerms)
	}
	return product, args.Error(1)
}

// --- Mock ApplicationRepository ---

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.LoanApplication, error) {
	args := m.Called(ctx, applicationID)
	var application *domain.LoanApplication
	if args.Get(0) != nil {
		application = args.Get(0).(*domain.LoanApplication)
	}
	return application, args.Error(1)
}

func (m *MockApplicationRepository) ExistsOpenChain(ctx context.Context, borrowerID, productID string) (bool, error) {
	args := m.Called(ctx, borrowerID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, application domain.LoanApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

func (m *MockApplicationRepository) UpdateApplication(ctx context.Context, application domain.LoanApplication) error {
	args := m.Called(ctx, application)
	return args.Error(0)
}

// --- Mock LoanRepository ---

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	var loan *domain.Loan
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.Loan)
	}
	return loan, args.Error(1)
}

func (m *MockLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	args := m.Called(ctx, borrowerID, limit, nextToken)
	var loans []domain.Loan
	if args.Get(0) != nil {
		loans = args.Get(0).([]domain.Loan)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return loans, token, args.Error(2)
}

func (m *MockLoanRepository) CreateLoanFromApproval(ctx context.Context, loan domain.Loan, approval domain.LoanApproval, application domain.LoanApplication) error {
	args := m.Called(ctx, loan, approval, application)
	return args.Error(0)
}

func (m *MockLoanRepository) DisburseLoan(ctx context.Context, loan domain.Loan, expectedVersion int64, disbursement domain.LoanDisbursement) error {
	args := m.Called(ctx, loan, expectedVersion, disbursement)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyRepayment(ctx context.Context, loan domain.Loan, expectedVersion int64, repayment domain.LoanRepayment) error {
	args := m.Called(ctx, loan, expectedVersion, repayment)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyRestructure(ctx context.Context, loan domain.Loan, expectedVersion int64, restructure domain.LoanRestructure) error {
	args := m.Called(ctx, loan, expectedVersion, restructure)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyTakeover(ctx context.Context, source domain.Loan, expectedVersion int64, successor domain.Loan, takeover domain.LoanTakeover) error {
	args := m.Called(ctx, source, expectedVersion, successor, takeover)
	return args.Error(0)
}

func (m *MockLoanRepository) ApplyDefault(ctx context.Context, loan domain.Loan, expectedVersion int64, loanDefault domain.LoanDefault) error {
	args := m.Called(ctx, loan, expectedVersion, loanDefault)
	return args.Error(0)
}

// --- Mock RepaymentRepository ---

type MockRepaymentRepository struct {
	mock.Mock
}

func (m *MockRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.LoanRepayment, error) {
	args := m.Called(ctx, repaymentID)
	var repayment *domain.LoanRepayment
	if args.Get(0) != nil {
		repayment = args.Get(0).(*domain.LoanRepayment)
	}
	return repayment, args.Error(1)
}

func (m *MockRepaymentRepository) ListRepaymentsByLoan(ctx context.Context, loanID string, limit int, nextToken *string) ([]domain.LoanRepayment, *string, error) {
	args := m.Called(ctx, loanID, limit, nextToken)
	var repayments []domain.LoanRepayment
	if args.Get(0) != nil {
		repayments = args.Get(0).([]domain.LoanRepayment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return repayments, token, args.Error(2)
}

func (m *MockRepaymentRepository) SaveRepayment(ctx context.Context, repayment domain.LoanRepayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

func (m *MockRepaymentRepository) UpdateRepayment(ctx context.Context, repayment domain.LoanRepayment) error {
	args := m.Called(ctx, repayment)
	return args.Error(0)
}

// --- Mock RestructureRepository ---

type MockRestructureRepository struct {
	mock.Mock
}

func (m *MockRestructureRepository) FindRestructureByID(ctx context.Context, restructureID string) (*domain.LoanRestructure, error) {
	args := m.Called(ctx, restructureID)
	var restructure *domain.LoanRestructure
	if args.Get(0) != nil {
		restructure = args.Get(0).(*domain.LoanRestructure)
	}
	return restructure, args.Error(1)
}

func (m *MockRestructureRepository) SaveRestructure(ctx context.Context, restructure domain.LoanRestructure) error {
	args := m.Called(ctx, restructure)
	return args.Error(0)
}

func (m *MockRestructureRepository) UpdateRestructure(ctx context.Context, restructure domain.LoanRestructure) error {
	args := m.Called(ctx, restructure)
	return args.Error(0)
}

// --- Mock TakeoverRepository ---

type MockTakeoverRepository struct {
	mock.Mock
}

func (m *MockTakeoverRepository) FindTakeoverByID(ctx context.Context, takeoverID string) (*domain.LoanTakeover, error) {
	args := m.Called(ctx, takeoverID)
	var takeover *domain.LoanTakeover
	if args.Get(0) != nil {
		takeover = args.Get(0).(*domain.LoanTakeover)
	}
	return takeover, args.Error(1)
}

func (m *MockTakeoverRepository) SaveTakeover(ctx context.Context, takeover domain.LoanTakeover) error {
	args := m.Called(ctx, takeover)
	return args.Error(0)
}

func (m *MockTakeoverRepository) UpdateTakeover(ctx context.Context, takeover domain.LoanTakeover) error {
	args := m.Called(ctx, takeover)
	return args.Error(0)
}

// --- Mock DefaultRepository ---

type MockDefaultRepository struct {
	mock.Mock
}

func (m *MockDefaultRepository) FindDefaultByID(ctx context.Context, defaultID string) (*domain.LoanDefault, error) {
	args := m.Called(ctx, defaultID)
	var loanDefault *domain.LoanDefault
	if args.Get(0) != nil {
		loanDefault = args.Get(0).(*domain.LoanDefault)
	}
	return loanDefault, args.Error(1)
}

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.LoanEvent) {
	m.Called(ctx, event)
}

// --- Mock BorrowerDirectory ---

type MockBorrowerDirectory struct {
	mock.Mock
}

func (m *MockBorrowerDirectory) BorrowerExists(ctx context.Context, borrowerID string) (bool, error) {
	args := m.Called(ctx, borrowerID)
	return args.Bool(0), args.Error(1)
}
