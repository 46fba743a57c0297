package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
)

// netIncomeLineCode is the pseudo-code for the synthetic equity line that
// carries the current period's net income onto the balance sheet. No closing
// entries are booked, so retained earnings are simulated at read time.
const netIncomeLineCode = "9999"

// reportingService builds financial statements from posted ledger activity.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// FinancialStatements produces the P&L and balance sheet together from one
// pass over the posted ledger. Accounts whose balance nets to zero are
// omitted from every section.
func (s *reportingService) FinancialStatements(ctx context.Context) (*domain.FinancialStatements, error) {
	logger := s.GetLogger(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx)
	if err != nil {
		logger.Error("Failed to aggregate account activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	stmts := &domain.FinancialStatements{
		ProfitAndLoss: domain.ProfitAndLoss{
			Income:       []domain.StatementLine{},
			Expenses:     []domain.StatementLine{},
			TotalIncome:  decimal.Zero,
			TotalExpense: decimal.Zero,
		},
		BalanceSheet: domain.BalanceSheet{
			Assets:           []domain.StatementLine{},
			Liabilities:      []domain.StatementLine{},
			Equity:           []domain.StatementLine{},
			TotalAssets:      decimal.Zero,
			TotalLiabilities: decimal.Zero,
			TotalEquity:      decimal.Zero,
		},
	}

	for _, a := range activity {
		balance := a.Balance()
		if balance.IsZero() {
			continue
		}
		line := domain.StatementLine{Code: a.Code, Name: a.Name, Balance: balance}

		switch a.AccountType {
		case domain.Income:
			stmts.ProfitAndLoss.Income = append(stmts.ProfitAndLoss.Income, line)
			stmts.ProfitAndLoss.TotalIncome = stmts.ProfitAndLoss.TotalIncome.Add(balance)
		case domain.Expense:
			stmts.ProfitAndLoss.Expenses = append(stmts.ProfitAndLoss.Expenses, line)
			stmts.ProfitAndLoss.TotalExpense = stmts.ProfitAndLoss.TotalExpense.Add(balance)
		case domain.Asset:
			stmts.BalanceSheet.Assets = append(stmts.BalanceSheet.Assets, line)
			stmts.BalanceSheet.TotalAssets = stmts.BalanceSheet.TotalAssets.Add(balance)
		case domain.Liability:
			stmts.BalanceSheet.Liabilities = append(stmts.BalanceSheet.Liabilities, line)
			stmts.BalanceSheet.TotalLiabilities = stmts.BalanceSheet.TotalLiabilities.Add(balance)
		case domain.Equity:
			stmts.BalanceSheet.Equity = append(stmts.BalanceSheet.Equity, line)
			stmts.BalanceSheet.TotalEquity = stmts.BalanceSheet.TotalEquity.Add(balance)
		default:
			return nil, fmt.Errorf("unknown account type %q for account %s", a.AccountType, a.Code)
		}
	}

	netIncome := stmts.ProfitAndLoss.TotalIncome.Sub(stmts.ProfitAndLoss.TotalExpense)
	stmts.ProfitAndLoss.NetIncome = netIncome

	// Net income flows into equity even when zero, so the statement always
	// shows where the period's result sits.
	stmts.BalanceSheet.Equity = append(stmts.BalanceSheet.Equity, domain.StatementLine{
		Code:    netIncomeLineCode,
		Name:    "Net Income (Current Period)",
		Balance: netIncome,
	})
	stmts.BalanceSheet.TotalEquity = stmts.BalanceSheet.TotalEquity.Add(netIncome)

	stmts.BalanceSheet.Check = stmts.BalanceSheet.TotalAssets.Sub(
		stmts.BalanceSheet.TotalLiabilities.Add(stmts.BalanceSheet.TotalEquity))

	if !stmts.BalanceSheet.Check.IsZero() {
		logger.Warn("Balance sheet does not balance", slog.String("check", stmts.BalanceSheet.Check.String()))
	}
	return stmts, nil
}
