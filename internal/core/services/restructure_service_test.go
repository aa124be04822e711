package services_test

import (
	"context"
	"testing"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
	"github.com/emkopo/employee_lending_app/internal/core/services"
	"github.com/emkopo/employee_lending_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RestructureServiceTestSuite struct {
	suite.Suite
	mockLoanRepo        *MockLoanRepository
	mockRestructureRepo *MockRestructureRepository
	mockPublisher       *MockEventPublisher
	service             portssvc.RestructureSvcFacade
}

func (suite *RestructureServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockRestructureRepo = new(MockRestructureRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewRestructureService(suite.mockLoanRepo, suite.mockRestructureRepo, suite.mockPublisher, 3)
}

// --- RequestRestructure Tests ---

func (suite *RestructureServiceTestSuite) TestRequestRestructure_NonPrivilegedWaitsPending() {
	ctx := context.Background()
	loanID := uuid.NewString()

	req := dto.RequestRestructureRequest{
		LoanID:          loanID,
		NewTerm:         10,
		NewRate:         decimal.NewFromInt(5),
		NewInterestType: domain.InterestFlat,
		ActorID:         uuid.NewString(),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(activeLoan(loanID), nil).Once()
	suite.mockRestructureRepo.On("SaveRestructure", ctx, mock.MatchedBy(func(r domain.LoanRestructure) bool {
		// No repayments yet: 8000 outstanding minus 3000 unpaid interest leaves
		// 5000 principal, re-amortized at 5% flat over 10 months.
		return r.Status == domain.ReviewPending &&
			r.OutstandingPrincipal.Equal(decimal.NewFromInt(5000)) &&
			r.NewInterestAmount.Equal(decimal.NewFromInt(2500)) &&
			r.NewTotalAmount.Equal(decimal.NewFromInt(7500))
	})).Return(nil).Once()

	restructure, err := suite.service.RequestRestructure(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(restructure)
	suite.Equal(domain.ReviewPending, restructure.Status)

	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ApplyRestructure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockPublisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *RestructureServiceTestSuite) TestRequestRestructure_PrivilegedAppliesImmediately() {
	ctx := context.Background()
	loanID := uuid.NewString()

	req := dto.RequestRestructureRequest{
		LoanID:            loanID,
		NewTerm:           10,
		NewRate:           decimal.NewFromInt(5),
		NewInterestType:   domain.InterestFlat,
		ActorID:           uuid.NewString(),
		ActorIsPrivileged: true,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(activeLoan(loanID), nil).Twice()
	suite.mockLoanRepo.On("ApplyRestructure", ctx,
		mock.MatchedBy(func(l domain.Loan) bool {
			return l.Term == 10 &&
				l.InterestAmount.Equal(decimal.NewFromInt(2500)) &&
				l.TotalAmount.Equal(decimal.NewFromInt(7500)) &&
				l.OutstandingAmount.Equal(decimal.NewFromInt(7500))
		}),
		int64(3),
		mock.MatchedBy(func(r domain.LoanRestructure) bool {
			return r.Status == domain.ReviewApproved
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e domain.LoanEvent) bool {
		return e.Type == domain.EventLoanRestructured
	})).Return().Once()

	restructure, err := suite.service.RequestRestructure(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(restructure)
	suite.Equal(domain.ReviewApproved, restructure.Status)

	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *RestructureServiceTestSuite) TestRequestRestructure_NonServiceableLoan() {
	ctx := context.Background()
	loanID := uuid.NewString()

	loan := activeLoan(loanID)
	loan.Status = domain.LoanWrittenOff

	req := dto.RequestRestructureRequest{
		LoanID:          loanID,
		NewTerm:         10,
		NewRate:         decimal.NewFromInt(5),
		NewInterestType: domain.InterestFlat,
		ActorID:         uuid.NewString(),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	restructure, err := suite.service.RequestRestructure(ctx, req)

	suite.Require().Error(err)
	suite.Nil(restructure)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

// --- ApproveRestructure Tests ---

func (suite *RestructureServiceTestSuite) TestApproveRestructure_RecomputesFromCurrentBalance() {
	ctx := context.Background()
	loanID := uuid.NewString()
	restructureID := uuid.NewString()
	approverID := uuid.NewString()

	pending := &domain.LoanRestructure{
		RestructureID:        restructureID,
		LoanID:               loanID,
		OutstandingPrincipal: decimal.NewFromInt(5000),
		NewTerm:              10,
		NewRate:              decimal.NewFromInt(5),
		NewInterestType:      domain.InterestFlat,
		Status:               domain.ReviewPending,
	}

	// 4000 repaid since the request: the 3000 interest is fully covered, so the
	// 4000 still outstanding is pure principal and that is what re-amortizes.
	loan := activeLoan(loanID)
	loan.OutstandingAmount = decimal.NewFromInt(4000)

	suite.mockRestructureRepo.On("FindRestructureByID", ctx, restructureID).Return(pending, nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("ApplyRestructure", ctx,
		mock.MatchedBy(func(l domain.Loan) bool {
			return l.InterestAmount.Equal(decimal.NewFromInt(2000)) &&
				l.TotalAmount.Equal(decimal.NewFromInt(6000)) &&
				l.OutstandingAmount.Equal(decimal.NewFromInt(6000))
		}),
		int64(3),
		mock.MatchedBy(func(r domain.LoanRestructure) bool {
			return r.Status == domain.ReviewApproved && r.DecidedBy == approverID
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.Anything).Return().Once()

	err := suite.service.ApproveRestructure(ctx, restructureID, approverID)

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *RestructureServiceTestSuite) TestApproveRestructure_NotPending() {
	ctx := context.Background()
	restructureID := uuid.NewString()

	rejected := &domain.LoanRestructure{
		RestructureID: restructureID,
		Status:        domain.ReviewRejected,
	}

	suite.mockRestructureRepo.On("FindRestructureByID", ctx, restructureID).Return(rejected, nil).Once()

	err := suite.service.ApproveRestructure(ctx, restructureID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

// --- RejectRestructure Tests ---

func (suite *RestructureServiceTestSuite) TestRejectRestructure_Success() {
	ctx := context.Background()
	restructureID := uuid.NewString()
	actorID := uuid.NewString()

	pending := &domain.LoanRestructure{
		RestructureID: restructureID,
		LoanID:        uuid.NewString(),
		Status:        domain.ReviewPending,
	}

	suite.mockRestructureRepo.On("FindRestructureByID", ctx, restructureID).Return(pending, nil).Once()
	suite.mockRestructureRepo.On("UpdateRestructure", ctx, mock.MatchedBy(func(r domain.LoanRestructure) bool {
		return r.Status == domain.ReviewRejected && r.RejectReason == "terms too long"
	})).Return(nil).Once()

	err := suite.service.RejectRestructure(ctx, restructureID, "terms too long", actorID)

	suite.Require().NoError(err)
	suite.mockRestructureRepo.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ApplyRestructure", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRestructureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RestructureServiceTestSuite))
}
