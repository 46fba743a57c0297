package domain

import (
	"github.com/shopspring/decimal"
)

// AccountActivity is the aggregated debit/credit movement of one account
// across all POSTED journal entries. Missing rows are treated as zero.
type AccountActivity struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Debits      decimal.Decimal `json:"debits"`
	Credits     decimal.Decimal `json:"credits"`
}

// Balance applies the normal-balance sign convention for the account type:
// debit-normal accounts report debits-credits, credit-normal accounts report
// credits-debits.
func (a AccountActivity) Balance() decimal.Decimal {
	if a.AccountType.NormalDebit() {
		return a.Debits.Sub(a.Credits)
	}
	return a.Credits.Sub(a.Debits)
}

// StatementLine is one account row on a financial statement.
type StatementLine struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// ProfitAndLoss is the income statement for the whole posted ledger.
type ProfitAndLoss struct {
	Income       []StatementLine `json:"income"`
	Expenses     []StatementLine `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// BalanceSheet is the statement of financial position. Equity includes a
// synthetic "Net Income (Current Period)" line standing in for retained
// earnings, since no closing entries are booked. Check is the accounting
// equation residual, assets - (liabilities + equity); it must be zero for a
// correctly-posted ledger and is exposed as a first-class diagnostic.
type BalanceSheet struct {
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Equity           []StatementLine `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Check            decimal.Decimal `json:"check"`
}

// FinancialStatements bundles the two reports produced together from a single
// pass over the chart of accounts.
type FinancialStatements struct {
	ProfitAndLoss ProfitAndLoss `json:"profitAndLoss"`
	BalanceSheet  BalanceSheet  `json:"balanceSheet"`
}
