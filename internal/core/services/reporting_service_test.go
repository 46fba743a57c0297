package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context) ([]domain.AccountActivity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func activity(code, name string, accountType domain.AccountType, debits, credits int64) domain.AccountActivity {
	return domain.AccountActivity{
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Debits:      decimal.NewFromInt(debits),
		Credits:     decimal.NewFromInt(credits),
	}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestFinancialStatements_BalancedLedger() {
	ctx := context.Background()

	// One posted sale: Dr AR 115 / Cr Revenue 100, Cr Tax Payable 15.
	suite.mockRepo.On("GetAccountActivity", ctx).Return([]domain.AccountActivity{
		activity("1200", "Accounts Receivable", domain.Asset, 115, 0),
		activity("2100", "Sales Tax Payable", domain.Liability, 0, 15),
		activity("4000", "Sales Revenue", domain.Income, 0, 100),
	}, nil).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(stmts)

	suite.True(stmts.ProfitAndLoss.TotalIncome.Equal(decimal.NewFromInt(100)))
	suite.True(stmts.ProfitAndLoss.TotalExpense.IsZero())
	suite.True(stmts.ProfitAndLoss.NetIncome.Equal(decimal.NewFromInt(100)))

	suite.True(stmts.BalanceSheet.TotalAssets.Equal(decimal.NewFromInt(115)))
	suite.True(stmts.BalanceSheet.TotalLiabilities.Equal(decimal.NewFromInt(15)))
	suite.True(stmts.BalanceSheet.TotalEquity.Equal(decimal.NewFromInt(100)))
	suite.True(stmts.BalanceSheet.Check.IsZero())

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialStatements_OmitsZeroBalances() {
	ctx := context.Background()

	suite.mockRepo.On("GetAccountActivity", ctx).Return([]domain.AccountActivity{
		activity("1000", "Cash on Hand", domain.Asset, 500, 500), // nets to zero
		activity("1200", "Accounts Receivable", domain.Asset, 300, 0),
		activity("3000", "Owner Equity", domain.Equity, 0, 300),
	}, nil).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(stmts.BalanceSheet.Assets, 1)
	suite.Equal("1200", stmts.BalanceSheet.Assets[0].Code)
	suite.True(stmts.BalanceSheet.TotalAssets.Equal(decimal.NewFromInt(300)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialStatements_NetIncomeEquityLine() {
	ctx := context.Background()

	suite.mockRepo.On("GetAccountActivity", ctx).Return([]domain.AccountActivity{
		activity("1000", "Cash on Hand", domain.Asset, 80, 0),
		activity("4000", "Sales Revenue", domain.Income, 0, 200),
		activity("5000", "Rent Expense", domain.Expense, 120, 0),
	}, nil).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().NoError(err)
	suite.True(stmts.ProfitAndLoss.NetIncome.Equal(decimal.NewFromInt(80)))

	// The synthetic line is always the last equity row.
	suite.Require().NotEmpty(stmts.BalanceSheet.Equity)
	last := stmts.BalanceSheet.Equity[len(stmts.BalanceSheet.Equity)-1]
	suite.Equal("9999", last.Code)
	suite.Equal("Net Income (Current Period)", last.Name)
	suite.True(last.Balance.Equal(decimal.NewFromInt(80)))
	suite.True(stmts.BalanceSheet.Check.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialStatements_EmptyLedger() {
	ctx := context.Background()

	suite.mockRepo.On("GetAccountActivity", ctx).Return([]domain.AccountActivity{}, nil).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().NoError(err)
	suite.Empty(stmts.ProfitAndLoss.Income)
	suite.Empty(stmts.ProfitAndLoss.Expenses)
	suite.Empty(stmts.BalanceSheet.Assets)
	suite.Empty(stmts.BalanceSheet.Liabilities)

	// Even an empty ledger reports the zero net income line.
	suite.Require().Len(stmts.BalanceSheet.Equity, 1)
	suite.Equal("9999", stmts.BalanceSheet.Equity[0].Code)
	suite.True(stmts.BalanceSheet.Equity[0].Balance.IsZero())
	suite.True(stmts.BalanceSheet.Check.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialStatements_NetLoss() {
	ctx := context.Background()

	suite.mockRepo.On("GetAccountActivity", ctx).Return([]domain.AccountActivity{
		activity("4000", "Sales Revenue", domain.Income, 0, 50),
		activity("5100", "Salaries & Wages", domain.Expense, 90, 0),
		activity("1000", "Cash on Hand", domain.Asset, 0, 40),
	}, nil).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().NoError(err)
	suite.True(stmts.ProfitAndLoss.NetIncome.Equal(decimal.NewFromInt(-40)))
	suite.True(stmts.BalanceSheet.TotalEquity.Equal(decimal.NewFromInt(-40)))
	suite.True(stmts.BalanceSheet.TotalAssets.Equal(decimal.NewFromInt(-40)))
	suite.True(stmts.BalanceSheet.Check.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialStatements_RepositoryError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("GetAccountActivity", ctx).Return(nil, expectedErr).Once()

	stmts, err := suite.service.FinancialStatements(ctx)

	suite.Require().Error(err)
	suite.Nil(stmts)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
