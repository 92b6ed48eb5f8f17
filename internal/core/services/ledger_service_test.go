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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockHoldingRepo  *MockHoldingRepository
	mockTransferRepo *MockTransferRepository
	mockAuditRepo    *MockAuditRepository
	service          portssvc.LedgerSvcFacade

	actorID  string
	sourceID string
	destID   string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockHoldingRepo = new(MockHoldingRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	auditSvc := services.NewAuditService(suite.mockAuditRepo)
	suite.service = services.NewLedgerService(suite.mockHoldingRepo, suite.mockTransferRepo, suite.mockAuditRepo, auditSvc, nil)

	suite.actorID = uuid.NewString()
	suite.sourceID = uuid.NewString()
	suite.destID = uuid.NewString()
}

// holdingPair builds a locked-read result with the given balances.
func (suite *LedgerServiceTestSuite) holdingPair(sourceBalance, destBalance int64) map[string]domain.Holding {
	return map[string]domain.Holding{
		suite.sourceID: {
			HoldingID:    suite.sourceID,
			OwnerID:      suite.actorID,
			Kind:         domain.HoldingAccount,
			Balance:      decimal.NewFromInt(sourceBalance),
			CurrencyCode: "USD",
			Version:      3,
		},
		suite.destID: {
			HoldingID:    suite.destID,
			OwnerID:      uuid.NewString(),
			Kind:         domain.HoldingAccount,
			Balance:      decimal.NewFromInt(destBalance),
			CurrencyCode: "USD",
			Version:      7,
		},
	}
}

func (suite *LedgerServiceTestSuite) transferRequest(amount int64) dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		SourceHoldingID: suite.sourceID,
		DestHoldingID:   suite.destID,
		Amount:          decimal.NewFromInt(amount),
		CurrencyCode:    "USD",
	}
}

func decimalEq(expected decimal.Decimal) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(expected) })
}

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	req := suite.transferRequest(40)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.sourceID, suite.destID}).
		Return(suite.holdingPair(100, 0), nil).Once()

	debited := &domain.Holding{HoldingID: suite.sourceID, Balance: decimal.NewFromInt(60), Version: 4}
	credited := &domain.Holding{HoldingID: suite.destID, Balance: decimal.NewFromInt(40), Version: 8}
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.sourceID, decimalEq(decimal.NewFromInt(-40)), int64(3), suite.actorID).
		Return(debited, nil).Once()
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.destID, decimalEq(decimal.NewFromInt(40)), int64(7), suite.actorID).
		Return(credited, nil).Once()

	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.Status == domain.TransferCompleted &&
			t.Amount.Equal(decimal.NewFromInt(40)) &&
			*t.SourceHoldingID == suite.sourceID &&
			*t.DestHoldingID == suite.destID
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventTransfer && *e.ActorID == suite.actorID
	})).Return(nil).Once()
	suite.mockHoldingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.TransferCompleted, result.Transfer.Status)
	suite.True(result.SourceBalance.Equal(decimal.NewFromInt(60)))
	suite.True(result.DestBalance.Equal(decimal.NewFromInt(40)))
	// Value is conserved across the pair.
	suite.True(result.SourceBalance.Add(result.DestBalance).Equal(decimal.NewFromInt(100)))

	suite.mockHoldingRepo.AssertExpectations(suite.T())
	suite.mockTransferRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	req := suite.transferRequest(1000)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(suite.holdingPair(100, 0), nil).Once()
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.sourceID, mock.Anything, int64(3), suite.actorID).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	// The rejection is persisted outside the aborted transaction.
	suite.mockTransferRepo.On("SaveTransfer", mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.Status == domain.TransferRejected && t.Reason == "insufficient funds"
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventTransfer && e.Detail["status"] == string(domain.TransferRejected)
	})).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.Nil(result)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertExpectations(suite.T())
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

// expectFailedTransferAudit registers the audit entry every failed transfer
// invocation leaves behind.
func (suite *LedgerServiceTestSuite) expectFailedTransferAudit() {
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventTransfer && e.Detail["status"] == string(domain.TransferFailed)
	})).Return(nil).Once()
}

func (suite *LedgerServiceTestSuite) TestTransfer_SelfTransferRejected() {
	req := suite.transferRequest(10)
	req.DestHoldingID = req.SourceHoldingID
	suite.expectFailedTransferAudit()

	result, err := suite.service.Transfer(context.Background(), suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrSelfTransfer)
	suite.Nil(result)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_NonPositiveAmount() {
	req := suite.transferRequest(0)
	suite.expectFailedTransferAudit()

	result, err := suite.service.Transfer(context.Background(), suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(result)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_CurrencyMismatch() {
	ctx := context.Background()
	req := suite.transferRequest(10)

	holdings := suite.holdingPair(100, 0)
	dest := holdings[suite.destID]
	dest.CurrencyCode = "EUR"
	holdings[suite.destID] = dest

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(holdings, nil).Once()
	suite.expectFailedTransferAudit()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrCurrencyMismatch)
	suite.Nil(result)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SourceNotOwned() {
	ctx := context.Background()
	req := suite.transferRequest(10)

	holdings := suite.holdingPair(100, 0)
	source := holdings[suite.sourceID]
	source.OwnerID = uuid.NewString()
	holdings[suite.sourceID] = source

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(holdings, nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventSuspiciousActivity
	})).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockAuditRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ConflictThenSuccess() {
	ctx := context.Background()
	req := suite.transferRequest(40)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Twice()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(suite.holdingPair(100, 0), nil).Twice()

	// First attempt loses the version race, second succeeds.
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.sourceID, mock.Anything, int64(3), suite.actorID).
		Return(nil, apperrors.ErrConflict).Once()
	debited := &domain.Holding{HoldingID: suite.sourceID, Balance: decimal.NewFromInt(60), Version: 4}
	credited := &domain.Holding{HoldingID: suite.destID, Balance: decimal.NewFromInt(40), Version: 8}
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.sourceID, mock.Anything, int64(3), suite.actorID).
		Return(debited, nil).Once()
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.destID, mock.Anything, int64(7), suite.actorID).
		Return(credited, nil).Once()

	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockHoldingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.TransferCompleted, result.Transfer.Status)
	suite.mockHoldingRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_ContentionAfterRetries() {
	ctx := context.Background()
	req := suite.transferRequest(40)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Times(3)
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(suite.holdingPair(100, 0), nil).Times(3)
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.sourceID, mock.Anything, int64(3), suite.actorID).
		Return(nil, apperrors.ErrConflict).Times(3)
	suite.expectFailedTransferAudit()

	result, err := suite.service.Transfer(ctx, suite.actorID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrContention)
	suite.Nil(result)
	suite.mockHoldingRepo.AssertExpectations(suite.T())
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetTransferByID_ForbiddenForStranger() {
	ctx := context.Background()
	transferID := uuid.NewString()
	ownerOfLegs := uuid.NewString()
	transfer := &domain.Transfer{
		TransferID:      transferID,
		SourceHoldingID: &suite.sourceID,
		DestHoldingID:   &suite.destID,
		Amount:          decimal.NewFromInt(5),
		CurrencyCode:    "USD",
		Status:          domain.TransferCompleted,
		CreatedBy:       ownerOfLegs,
	}

	suite.mockTransferRepo.On("FindTransferByID", mock.Anything, transferID).Return(transfer, nil).Once()
	suite.mockHoldingRepo.On("FindHoldingByID", mock.Anything, suite.sourceID).
		Return(&domain.Holding{HoldingID: suite.sourceID, OwnerID: ownerOfLegs}, nil).Once()
	suite.mockHoldingRepo.On("FindHoldingByID", mock.Anything, suite.destID).
		Return(&domain.Holding{HoldingID: suite.destID, OwnerID: ownerOfLegs}, nil).Once()

	result, err := suite.service.GetTransferByID(ctx, suite.actorID, transferID)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
}

func (suite *LedgerServiceTestSuite) TestListTransfersByHolding_OwnershipEnforced() {
	ctx := context.Background()

	suite.mockHoldingRepo.On("FindHoldingByID", mock.Anything, suite.sourceID).
		Return(&domain.Holding{HoldingID: suite.sourceID, OwnerID: uuid.NewString()}, nil).Once()

	result, err := suite.service.ListTransfersByHolding(ctx, suite.actorID, suite.sourceID, 10)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(result)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "ListTransfersByHolding", mock.Anything, mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
