package services_test

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/openvault/digibank/internal/core/domain"
	portsrepo "github.com/openvault/digibank/internal/core/ports/repositories"
	portssvc "github.com/openvault/digibank/internal/core/ports/services"
)

// --- Mock HoldingRepository (with transaction management) ---

type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockHoldingRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockHoldingRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockHoldingRepository) SaveHolding(ctx context.Context, holding domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) FindHoldingByID(ctx context.Context, holdingID string) (*domain.Holding, error) {
	args := m.Called(ctx, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) ListHoldingsByOwner(ctx context.Context, ownerID string) ([]domain.Holding, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) FindPrimaryHoldingByOwner(ctx context.Context, ownerID string) (*domain.Holding, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) FindHoldingsByIDsForUpdate(ctx context.Context, tx pgx.Tx, holdingIDs []string) (map[string]domain.Holding, error) {
	args := m.Called(ctx, tx, holdingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, holdingID string, delta decimal.Decimal, expectedVersion int64, userID string) (*domain.Holding, error) {
	args := m.Called(ctx, tx, holdingID, delta, expectedVersion, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) DeleteHoldingInTx(ctx context.Context, tx pgx.Tx, holdingID string) error {
	args := m.Called(ctx, tx, holdingID)
	return args.Error(0)
}

var _ portsrepo.HoldingRepositoryWithTx = (*MockHoldingRepository)(nil)

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error {
	args := m.Called(ctx, tx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfersByHolding(ctx context.Context, holdingID string, limit int) ([]domain.Transfer, error) {
	args := m.Called(ctx, holdingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transfer), args.Error(1)
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

// --- Mock LoanRepository ---

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByIDForUpdate(ctx context.Context, tx pgx.Tx, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, tx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) MarkLoanDecidedInTx(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	args := m.Called(ctx, tx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) ListLoansByBorrower(ctx context.Context, borrowerID string, status *domain.LoanStatus) ([]domain.Loan, error) {
	args := m.Called(ctx, borrowerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

var _ portsrepo.LoanRepositoryFacade = (*MockLoanRepository)(nil)

// --- Mock InvestmentRepository ---

type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) SaveInvestmentInTx(ctx context.Context, tx pgx.Tx, investment domain.Investment) error {
	args := m.Called(ctx, tx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) FindInvestmentByID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	args := m.Called(ctx, investmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) ListInvestmentsByOwner(ctx context.Context, ownerID string) ([]domain.Investment, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Investment), args.Error(1)
}

var _ portsrepo.InvestmentRepositoryFacade = (*MockInvestmentRepository)(nil)

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.AuditEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListEntriesByActor(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

var _ portsrepo.AuditRepositoryFacade = (*MockAuditRepository)(nil)

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)
