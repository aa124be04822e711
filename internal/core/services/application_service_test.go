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

type ApplicationServiceTestSuite struct {
	suite.Suite
	mockApplicationRepo *MockApplicationRepository
	mockProductRepo     *MockProductRepository
	mockBorrowers       *MockBorrowerDirectory
	service             portssvc.ApplicationSvcFacade
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.mockApplicationRepo = new(MockApplicationRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockBorrowers = new(MockBorrowerDirectory)
	suite.service = services.NewApplicationService(suite.mockApplicationRepo, suite.mockProductRepo, suite.mockBorrowers)
}

func testProduct(productID string) *domain.ProductTerms {
	return &domain.ProductTerms{
		ProductID:    productID,
		ProviderID:   uuid.NewString(),
		Name:         "Salary Advance",
		InterestRate: decimal.NewFromInt(10),
		InterestType: domain.InterestFlat,
		TermPeriod:   domain.PeriodMonth,
		MinAmount:    decimal.NewFromInt(1000),
		MaxAmount:    decimal.NewFromInt(100000),
		MinTerm:      1,
		MaxTerm:      24,
		IsActive:     true,
	}
}

// --- SubmitApplication Tests ---

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_Success() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	productID := uuid.NewString()

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  productID,
		Amount:     decimal.NewFromInt(5000),
		Term:       6,
		Purpose:    "school fees",
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(true, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()
	suite.mockApplicationRepo.On("ExistsOpenChain", ctx, borrowerID, productID).Return(false, nil).Once()
	suite.mockApplicationRepo.On("SaveApplication", ctx, mock.MatchedBy(func(a domain.LoanApplication) bool {
		return a.BorrowerID == borrowerID &&
			a.ProductID == productID &&
			a.Status == domain.ApplicationSubmitted &&
			a.RequestedAmount.Equal(decimal.NewFromInt(5000))
	})).Return(nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(application)
	suite.Equal(domain.ApplicationSubmitted, application.Status)
	suite.NotEmpty(application.ApplicationID)
	suite.Equal(6, application.RequestedTerm)

	suite.mockApplicationRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockBorrowers.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_UnknownBorrower() {
	ctx := context.Background()
	borrowerID := uuid.NewString()

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  uuid.NewString(),
		Amount:     decimal.NewFromInt(5000),
		Term:       6,
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(false, nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockApplicationRepo.AssertNotCalled(suite.T(), "SaveApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_InactiveProduct() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	productID := uuid.NewString()

	product := testProduct(productID)
	product.IsActive = false

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  productID,
		Amount:     decimal.NewFromInt(5000),
		Term:       6,
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(true, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_AmountOutOfBounds() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	productID := uuid.NewString()

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  productID,
		Amount:     decimal.NewFromInt(500),
		Term:       6,
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(true, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrOutOfBounds)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_TermOutOfBounds() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	productID := uuid.NewString()

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  productID,
		Amount:     decimal.NewFromInt(5000),
		Term:       36,
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(true, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrOutOfBounds)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_OpenChainExists() {
	ctx := context.Background()
	borrowerID := uuid.NewString()
	productID := uuid.NewString()

	req := dto.SubmitApplicationRequest{
		BorrowerID: borrowerID,
		ProductID:  productID,
		Amount:     decimal.NewFromInt(5000),
		Term:       6,
	}

	suite.mockBorrowers.On("BorrowerExists", ctx, borrowerID).Return(true, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(testProduct(productID), nil).Once()
	suite.mockApplicationRepo.On("ExistsOpenChain", ctx, borrowerID, productID).Return(true, nil).Once()

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockApplicationRepo.AssertNotCalled(suite.T(), "SaveApplication", mock.Anything, mock.Anything)
}

func (suite *ApplicationServiceTestSuite) TestSubmitApplication_NonPositiveAmount() {
	ctx := context.Background()

	req := dto.SubmitApplicationRequest{
		BorrowerID: uuid.NewString(),
		ProductID:  uuid.NewString(),
		Amount:     decimal.Zero,
		Term:       6,
	}

	application, err := suite.service.SubmitApplication(ctx, req)

	suite.Require().Error(err)
	suite.Nil(application)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- RejectApplication Tests ---

func (suite *ApplicationServiceTestSuite) TestRejectApplication_Success() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	actorID := uuid.NewString()

	application := &domain.LoanApplication{
		ApplicationID: applicationID,
		Status:        domain.ApplicationSubmitted,
	}

	suite.mockApplicationRepo.On("FindApplicationByID", ctx, applicationID).Return(application, nil).Once()
	suite.mockApplicationRepo.On("UpdateApplication", ctx, mock.MatchedBy(func(a domain.LoanApplication) bool {
		return a.Status == domain.ApplicationRejected && a.RejectionReason == "insufficient income" && a.LastUpdatedBy == actorID
	})).Return(nil).Once()

	err := suite.service.RejectApplication(ctx, applicationID, "insufficient income", actorID)

	suite.Require().NoError(err)
	suite.mockApplicationRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestRejectApplication_AlreadyDecided() {
	ctx := context.Background()
	applicationID := uuid.NewString()

	application := &domain.LoanApplication{
		ApplicationID: applicationID,
		Status:        domain.ApplicationApproved,
	}

	suite.mockApplicationRepo.On("FindApplicationByID", ctx, applicationID).Return(application, nil).Once()

	err := suite.service.RejectApplication(ctx, applicationID, "late", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockApplicationRepo.AssertNotCalled(suite.T(), "UpdateApplication", mock.Anything, mock.Anything)
}

// --- CancelApplication Tests ---

func (suite *ApplicationServiceTestSuite) TestCancelApplication_Success() {
	ctx := context.Background()
	applicationID := uuid.NewString()
	actorID := uuid.NewString()

	application := &domain.LoanApplication{
		ApplicationID: applicationID,
		Status:        domain.ApplicationUnderReview,
	}

	suite.mockApplicationRepo.On("FindApplicationByID", ctx, applicationID).Return(application, nil).Once()
	suite.mockApplicationRepo.On("UpdateApplication", ctx, mock.MatchedBy(func(a domain.LoanApplication) bool {
		return a.Status == domain.ApplicationCancelled
	})).Return(nil).Once()

	err := suite.service.CancelApplication(ctx, applicationID, actorID)

	suite.Require().NoError(err)
	suite.mockApplicationRepo.AssertExpectations(suite.T())
}

func (suite *ApplicationServiceTestSuite) TestCancelApplication_Terminal() {
	ctx := context.Background()
	applicationID := uuid.NewString()

	application := &domain.LoanApplication{
		ApplicationID: applicationID,
		Status:        domain.ApplicationRejected,
	}

	suite.mockApplicationRepo.On("FindApplicationByID", ctx, applicationID).Return(application, nil).Once()

	err := suite.service.CancelApplication(ctx, applicationID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
