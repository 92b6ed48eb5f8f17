package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openvault/digibank/internal/apperrors"
	"github.com/openvault/digibank/internal/core/domain"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
	"github.com/openvault/digibank/internal/core/services"
	"github.com/openvault/digibank/internal/dto"
)

type InvestmentServiceTestSuite struct {
	suite.Suite
	mockInvestmentRepo *MockInvestmentRepository
	mockHoldingRepo    *MockHoldingRepository
	mockTransferRepo   *MockTransferRepository
	mockAuditRepo      *MockAuditRepository
	service            portssvc.InvestmentSvcFacade

	ownerID   string
	holdingID string
}

func (suite *InvestmentServiceTestSuite) SetupTest() {
	suite.mockInvestmentRepo = new(MockInvestmentRepository)
	suite.mockHoldingRepo = new(MockHoldingRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	auditSvc := services.NewAuditService(suite.mockAuditRepo)
	suite.service = services.NewInvestmentService(suite.mockInvestmentRepo, suite.mockHoldingRepo, suite.mockTransferRepo, suite.mockAuditRepo, auditSvc, nil)

	suite.ownerID = uuid.NewString()
	suite.holdingID = uuid.NewString()
}

func (suite *InvestmentServiceTestSuite) lockedHolding(balance int64, ownerID string) map[string]domain.Holding {
	return map[string]domain.Holding{suite.holdingID: {
		HoldingID:    suite.holdingID,
		OwnerID:      ownerID,
		Balance:      decimal.NewFromInt(balance),
		CurrencyCode: "USD",
		Version:      4,
	}}
}

func (suite *InvestmentServiceTestSuite) TestFundInvestment_Success() {
	ctx := context.Background()
	req := dto.FundInvestmentRequest{
		SourceHoldingID: suite.holdingID,
		Amount:          decimal.NewFromInt(250),
		Type:            domain.InvestmentMutualFunds,
	}

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.holdingID}).
		Return(suite.lockedHolding(1000, suite.ownerID), nil).Once()
	debited := &domain.Holding{HoldingID: suite.holdingID, Balance: decimal.NewFromInt(750), Version: 5}
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.holdingID, decimalEq(decimal.NewFromInt(-250)), int64(4), suite.ownerID).
		Return(debited, nil).Once()
	suite.mockInvestmentRepo.On("SaveInvestmentInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(inv domain.Investment) bool {
		return inv.Status == domain.InvestmentActive && inv.Type == domain.InvestmentMutualFunds && inv.Amount.Equal(decimal.NewFromInt(250))
	})).Return(nil).Once()
	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.DestHoldingID == nil && *t.SourceHoldingID == suite.holdingID && t.Reason == "investment funding"
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventInvestmentFunded
	})).Return(nil).Once()
	suite.mockHoldingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	inv, err := suite.service.FundInvestment(ctx, suite.ownerID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Require().NotNil(inv)
	suite.Equal(domain.InvestmentActive, inv.Status)
	suite.Equal(suite.holdingID, inv.SourceHoldingID)
	suite.mockHoldingRepo.AssertExpectations(suite.T())
	suite.mockInvestmentRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestFundInvestment_UnknownTypeBeforeStorage() {
	req := dto.FundInvestmentRequest{
		SourceHoldingID: suite.holdingID,
		Amount:          decimal.NewFromInt(250),
		Type:            domain.InvestmentType("BEANIE_BABIES"),
	}

	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventInvestmentFunded && e.Detail["status"] == "FAILED"
	})).Return(nil).Once()

	inv, err := suite.service.FundInvestment(context.Background(), suite.ownerID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrInvalidInvestmentType)
	suite.Nil(inv)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestFundInvestment_InsufficientFunds() {
	ctx := context.Background()
	req := dto.FundInvestmentRequest{
		SourceHoldingID: suite.holdingID,
		Amount:          decimal.NewFromInt(5000),
		Type:            domain.InvestmentStocks,
	}

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.holdingID}).
		Return(suite.lockedHolding(100, suite.ownerID), nil).Once()
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.holdingID, decimalEq(decimal.NewFromInt(-5000)), int64(4), suite.ownerID).
		Return(nil, apperrors.ErrInsufficientFunds).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventInvestmentFunded && e.Detail["status"] == "REJECTED"
	})).Return(nil).Once()

	inv, err := suite.service.FundInvestment(ctx, suite.ownerID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(inv)
	suite.mockInvestmentRepo.AssertNotCalled(suite.T(), "SaveInvestmentInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestFundInvestment_SourceNotOwned() {
	ctx := context.Background()
	req := dto.FundInvestmentRequest{
		SourceHoldingID: suite.holdingID,
		Amount:          decimal.NewFromInt(100),
		Type:            domain.InvestmentBonds,
	}

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.holdingID}).
		Return(suite.lockedHolding(1000, uuid.NewString()), nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventSuspiciousActivity
	})).Return(nil).Once()

	inv, err := suite.service.FundInvestment(ctx, suite.ownerID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(inv)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *InvestmentServiceTestSuite) TestListInvestmentsByOwner() {
	ctx := context.Background()
	suite.mockInvestmentRepo.On("ListInvestmentsByOwner", mock.Anything, suite.ownerID).
		Return([]domain.Investment{{InvestmentID: uuid.NewString(), OwnerID: suite.ownerID}}, nil).Once()

	invs, err := suite.service.ListInvestmentsByOwner(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Len(invs, 1)
}

func TestInvestmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvestmentServiceTestSuite))
}
