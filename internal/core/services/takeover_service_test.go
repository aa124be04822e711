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

type TakeoverServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockTakeoverRepo *MockTakeoverRepository
	mockProductRepo  *MockProductRepository
	mockPublisher    *MockEventPublisher
	service          portssvc.TakeoverSvcFacade
}

func (suite *TakeoverServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockTakeoverRepo = new(MockTakeoverRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockPublisher = new(MockEventPublisher)
	suite.service = services.NewTakeoverService(suite.mockLoanRepo, suite.mockTakeoverRepo, suite.mockProductRepo, suite.mockPublisher, 3)
}

// --- RequestTakeover Tests ---

func (suite *TakeoverServiceTestSuite) TestRequestTakeover_NonPrivilegedWaitsPending() {
	ctx := context.Background()
	loanID := uuid.NewString()
	productID := uuid.NewString()

	req := dto.RequestTakeoverRequest{
		LoanID:           loanID,
		NewProductID:     productID,
		AdditionalAmount: decimal.NewFromInt(1000),
		NewTerm:          12,
		ActorID:          uuid.NewString(),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(activeLoan(loanID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()
	suite.mockTakeoverRepo.On("SaveTakeover", ctx, mock.MatchedBy(func(t domain.LoanTakeover) bool {
		return t.Status == domain.ReviewPending &&
			t.SourceLoanID == loanID &&
			t.OutstandingPrincipal.Equal(decimal.NewFromInt(5000)) &&
			t.NewLoanID == nil
	})).Return(nil).Once()

	takeover, err := suite.service.RequestTakeover(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(takeover)
	suite.Equal(domain.ReviewPending, takeover.Status)

	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ApplyTakeover", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TakeoverServiceTestSuite) TestRequestTakeover_PrivilegedCreatesSuccessor() {
	ctx := context.Background()
	loanID := uuid.NewString()
	productID := uuid.NewString()
	actorID := uuid.NewString()

	source := activeLoan(loanID)

	req := dto.RequestTakeoverRequest{
		LoanID:            loanID,
		NewProductID:      productID,
		AdditionalAmount:  decimal.NewFromInt(1000),
		NewTerm:           12,
		ActorID:           actorID,
		ActorIsPrivileged: true,
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(source, nil).Twice()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Twice()
	suite.mockLoanRepo.On("ApplyTakeover", ctx,
		mock.MatchedBy(func(closed domain.Loan) bool {
			return closed.Status == domain.LoanTakenOver &&
				closed.ActualEndDate != nil &&
				closed.TakenOverByID != nil
		}),
		int64(3),
		mock.MatchedBy(func(successor domain.Loan) bool {
			// 5000 carried principal plus 1000 cash at 10% flat over 12 months.
			return successor.Status == domain.LoanActive &&
				successor.Version == 1 &&
				successor.PrincipalAmount.Equal(decimal.NewFromInt(6000)) &&
				successor.InterestAmount.Equal(decimal.NewFromInt(7200)) &&
				successor.TotalAmount.Equal(decimal.NewFromInt(13200)) &&
				successor.TakenOverFromID != nil && *successor.TakenOverFromID == loanID &&
				successor.StartDate != nil
		}),
		mock.MatchedBy(func(t domain.LoanTakeover) bool {
			return t.Status == domain.ReviewApproved && t.NewLoanID != nil
		}),
	).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e domain.LoanEvent) bool {
		return e.Type == domain.EventLoanTakenOver && e.LoanID == loanID
	})).Return().Once()
	suite.mockPublisher.On("Publish", ctx, mock.MatchedBy(func(e domain.LoanEvent) bool {
		return e.Type == domain.EventLoanStatusChanged && e.Status == domain.LoanActive
	})).Return().Once()

	takeover, err := suite.service.RequestTakeover(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(takeover)
	suite.Equal(domain.ReviewApproved, takeover.Status)
	suite.Require().NotNil(takeover.NewLoanID)
	suite.NotEqual(loanID, *takeover.NewLoanID)

	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TakeoverServiceTestSuite) TestRequestTakeover_PrincipalOutOfTargetBounds() {
	ctx := context.Background()
	loanID := uuid.NewString()
	productID := uuid.NewString()

	product := testProduct(productID)
	product.MaxAmount = decimal.NewFromInt(5500)

	req := dto.RequestTakeoverRequest{
		LoanID:           loanID,
		NewProductID:     productID,
		AdditionalAmount: decimal.NewFromInt(1000),
		NewTerm:          12,
		ActorID:          uuid.NewString(),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(activeLoan(loanID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	takeover, err := suite.service.RequestTakeover(ctx, req)

	suite.Require().Error(err)
	suite.Nil(takeover)
	suite.ErrorIs(err, apperrors.ErrOutOfBounds)
}

func (suite *TakeoverServiceTestSuite) TestRequestTakeover_NegativeAdditionalAmount() {
	ctx := context.Background()

	req := dto.RequestTakeoverRequest{
		LoanID:           uuid.NewString(),
		NewProductID:     uuid.NewString(),
		AdditionalAmount: decimal.NewFromInt(-50),
		NewTerm:          12,
		ActorID:          uuid.NewString(),
	}

	takeover, err := suite.service.RequestTakeover(ctx, req)

	suite.Require().Error(err)
	suite.Nil(takeover)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanByID", mock.Anything, mock.Anything)
}

func (suite *TakeoverServiceTestSuite) TestRequestTakeover_NonServiceableSource() {
	ctx := context.Background()
	loanID := uuid.NewString()

	loan := activeLoan(loanID)
	loan.Status = domain.LoanTakenOver

	req := dto.RequestTakeoverRequest{
		LoanID:       loanID,
		NewProductID: uuid.NewString(),
		NewTerm:      12,
		ActorID:      uuid.NewString(),
	}

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(loan, nil).Once()

	takeover, err := suite.service.RequestTakeover(ctx, req)

	suite.Require().Error(err)
	suite.Nil(takeover)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

// --- ApproveTakeover Tests ---

func (suite *TakeoverServiceTestSuite) TestApproveTakeover_Success() {
	ctx := context.Background()
	loanID := uuid.NewString()
	productID := uuid.NewString()
	takeoverID := uuid.NewString()
	approverID := uuid.NewString()

	pending := &domain.LoanTakeover{
		TakeoverID:           takeoverID,
		SourceLoanID:         loanID,
		NewProductID:         productID,
		OutstandingPrincipal: decimal.NewFromInt(5000),
		AdditionalAmount:     decimal.NewFromInt(1000),
		NewTerm:              12,
		Status:               domain.ReviewPending,
	}

	suite.mockTakeoverRepo.On("FindTakeoverByID", ctx, takeoverID).Return(pending, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()
	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(activeLoan(loanID), nil).Once()
	suite.mockLoanRepo.On("ApplyTakeover", ctx, mock.Anything, int64(3), mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPublisher.On("Publish", ctx, mock.Anything).Return().Twice()

	successor, err := suite.service.ApproveTakeover(ctx, takeoverID, approverID)

	suite.Require().NoError(err)
	suite.Require().NotNil(successor)
	suite.Equal(domain.LoanActive, successor.Status)
	suite.True(successor.PrincipalAmount.Equal(decimal.NewFromInt(6000)))
	suite.Require().NotNil(successor.TakenOverFromID)
	suite.Equal(loanID, *successor.TakenOverFromID)

	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *TakeoverServiceTestSuite) TestApproveTakeover_NotPending() {
	ctx := context.Background()
	takeoverID := uuid.NewString()

	decided := &domain.LoanTakeover{
		TakeoverID: takeoverID,
		Status:     domain.ReviewApproved,
	}

	suite.mockTakeoverRepo.On("FindTakeoverByID", ctx, takeoverID).Return(decided, nil).Once()

	successor, err := suite.service.ApproveTakeover(ctx, takeoverID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(successor)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

// --- RejectTakeover Tests ---

func (suite *TakeoverServiceTestSuite) TestRejectTakeover_Success() {
	ctx := context.Background()
	takeoverID := uuid.NewString()
	actorID := uuid.NewString()

	pending := &domain.LoanTakeover{
		TakeoverID:   takeoverID,
		SourceLoanID: uuid.NewString(),
		Status:       domain.ReviewPending,
	}

	suite.mockTakeoverRepo.On("FindTakeoverByID", ctx, takeoverID).Return(pending, nil).Once()
	suite.mockTakeoverRepo.On("UpdateTakeover", ctx, mock.MatchedBy(func(t domain.LoanTakeover) bool {
		return t.Status == domain.ReviewRejected && t.RejectReason == "provider declined"
	})).Return(nil).Once()

	err := suite.service.RejectTakeover(ctx, takeoverID, "provider declined", actorID)

	suite.Require().NoError(err)
	suite.mockTakeoverRepo.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ApplyTakeover", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTakeoverServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TakeoverServiceTestSuite))
}
