package services_test

import (
	"context"
	"testing"
	"time"

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

type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockHoldingRepo  *MockHoldingRepository
	mockTransferRepo *MockTransferRepository
	mockAuditRepo    *MockAuditRepository
	service          portssvc.LoanSvcFacade

	borrowerID string
	adminID    string
	holdingID  string
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockHoldingRepo = new(MockHoldingRepository)
	suite.mockTransferRepo = new(MockTransferRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	auditSvc := services.NewAuditService(suite.mockAuditRepo)
	suite.service = services.NewLoanService(suite.mockLoanRepo, suite.mockHoldingRepo, suite.mockTransferRepo, suite.mockAuditRepo, auditSvc, nil)

	suite.borrowerID = uuid.NewString()
	suite.adminID = uuid.NewString()
	suite.holdingID = uuid.NewString()
}

func (suite *LoanServiceTestSuite) pendingLoan(principal int64) *domain.Loan {
	return &domain.Loan{
		LoanID:       uuid.NewString(),
		BorrowerID:   suite.borrowerID,
		Principal:    decimal.NewFromInt(principal),
		InterestRate: decimal.NewFromInt(5),
		DueDate:      time.Now().Add(30 * 24 * time.Hour),
		Status:       domain.LoanPending,
	}
}

func (suite *LoanServiceTestSuite) TestApplyLoan_DefaultInterestRate() {
	ctx := context.Background()
	req := dto.ApplyLoanRequest{
		Principal: decimal.NewFromInt(500),
		DueDate:   time.Now().Add(30 * 24 * time.Hour),
	}

	suite.mockHoldingRepo.On("ListHoldingsByOwner", mock.Anything, suite.borrowerID).
		Return([]domain.Holding{{HoldingID: suite.holdingID, OwnerID: suite.borrowerID}}, nil).Once()
	suite.mockLoanRepo.On("SaveLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanPending && l.InterestRate.Equal(decimal.NewFromInt(5))
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventLoanApplication
	})).Return(nil).Once()

	loan, err := suite.service.ApplyLoan(ctx, suite.borrowerID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.Equal(domain.LoanPending, loan.Status)
	suite.True(loan.InterestRate.Equal(decimal.NewFromInt(5)))
	// 500 at 5 percent simple interest repays 525.
	suite.True(loan.RepaymentAmount().Equal(decimal.NewFromInt(525)))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestApplyLoan_PastDueDateRejected() {
	req := dto.ApplyLoanRequest{
		Principal: decimal.NewFromInt(500),
		DueDate:   time.Now().Add(-time.Hour),
	}

	loan, err := suite.service.ApplyLoan(context.Background(), suite.borrowerID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(loan)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "SaveLoan", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestApplyLoan_NoHoldingRejected() {
	req := dto.ApplyLoanRequest{
		Principal: decimal.NewFromInt(500),
		DueDate:   time.Now().Add(30 * 24 * time.Hour),
	}

	suite.mockHoldingRepo.On("ListHoldingsByOwner", mock.Anything, suite.borrowerID).
		Return([]domain.Holding{}, nil).Once()

	loan, err := suite.service.ApplyLoan(context.Background(), suite.borrowerID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(loan)
}

func (suite *LoanServiceTestSuite) TestDecideLoan_ApproveDisbursesPrincipal() {
	ctx := context.Background()
	loan := suite.pendingLoan(500)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.holdingID}).
		Return(map[string]domain.Holding{suite.holdingID: {
			HoldingID:    suite.holdingID,
			OwnerID:      suite.borrowerID,
			Balance:      decimal.NewFromInt(10),
			CurrencyCode: "USD",
			Version:      2,
		}}, nil).Once()

	credited := &domain.Holding{HoldingID: suite.holdingID, Balance: decimal.NewFromInt(510), Version: 3}
	suite.mockHoldingRepo.On("AdjustBalanceInTx", mock.Anything, mock.Anything, suite.holdingID, decimalEq(decimal.NewFromInt(500)), int64(2), suite.adminID).
		Return(credited, nil).Once()
	suite.mockTransferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.SourceHoldingID == nil && *t.DestHoldingID == suite.holdingID && t.Reason == "loan disbursement"
	})).Return(nil).Once()
	suite.mockLoanRepo.On("MarkLoanDecidedInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanApproved && l.DecidedBy != nil && *l.DecidedBy == suite.adminID
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventLoanApproval
	})).Return(nil).Once()
	suite.mockHoldingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.DecideLoanRequest{Action: domain.LoanActionApprove, TargetHoldingID: &suite.holdingID}
	decided, err := suite.service.DecideLoan(ctx, suite.adminID, loan.LoanID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Require().NotNil(decided)
	suite.Equal(domain.LoanApproved, decided.Status)
	suite.Equal(suite.holdingID, *decided.TargetHoldingID)
	suite.NotNil(decided.DecidedAt)
	suite.mockHoldingRepo.AssertExpectations(suite.T())
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestDecideLoan_RejectDoesNotTouchBalances() {
	ctx := context.Background()
	loan := suite.pendingLoan(500)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("MarkLoanDecidedInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanRejected
	})).Return(nil).Once()
	suite.mockAuditRepo.On("AppendEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventLoanRejection
	})).Return(nil).Once()
	suite.mockHoldingRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	req := dto.DecideLoanRequest{Action: domain.LoanActionReject, Reason: "insufficient credit history"}
	decided, err := suite.service.DecideLoan(ctx, suite.adminID, loan.LoanID, req, dto.RequestMeta{})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanRejected, decided.Status)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTransferRepo.AssertNotCalled(suite.T(), "SaveTransferInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestDecideLoan_AlreadyDecided() {
	ctx := context.Background()
	loan := suite.pendingLoan(500)
	loan.Status = domain.LoanApproved

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventLoanApproval && e.Detail["status"] == "FAILED"
	})).Return(nil).Once()

	req := dto.DecideLoanRequest{Action: domain.LoanActionApprove, TargetHoldingID: &suite.holdingID}
	decided, err := suite.service.DecideLoan(ctx, suite.adminID, loan.LoanID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrAlreadyDecided)
	suite.Nil(decided)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "MarkLoanDecidedInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestDecideLoan_TargetNotBorrowers() {
	ctx := context.Background()
	loan := suite.pendingLoan(500)

	suite.mockHoldingRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockHoldingRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockHoldingRepo.On("FindHoldingsByIDsForUpdate", mock.Anything, mock.Anything, []string{suite.holdingID}).
		Return(map[string]domain.Holding{suite.holdingID: {
			HoldingID: suite.holdingID,
			OwnerID:   uuid.NewString(),
			Version:   1,
		}}, nil).Once()
	suite.mockAuditRepo.On("AppendEntry", mock.Anything, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Kind == domain.EventLoanApproval && e.Detail["status"] == "FAILED"
	})).Return(nil).Once()

	req := dto.DecideLoanRequest{Action: domain.LoanActionApprove, TargetHoldingID: &suite.holdingID}
	decided, err := suite.service.DecideLoan(ctx, suite.adminID, loan.LoanID, req, dto.RequestMeta{})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(decided)
	suite.mockHoldingRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestGetLoanByID_VisibleToBorrowerOnly() {
	ctx := context.Background()
	loan := suite.pendingLoan(100)

	suite.mockLoanRepo.On("FindLoanByID", mock.Anything, loan.LoanID).Return(loan, nil)

	got, err := suite.service.GetLoanByID(ctx, suite.borrowerID, loan.LoanID)
	suite.Require().NoError(err)
	suite.Equal(loan.LoanID, got.LoanID)

	_, err = suite.service.GetLoanByID(ctx, uuid.NewString(), loan.LoanID)
	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
