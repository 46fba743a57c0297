package services

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// ReportingSvcFacade is the statement engine: read-only, point-in-time
// financial reports over the posted ledger.
type ReportingSvcFacade interface {
	// FinancialStatements produces the P&L and Balance Sheet together from a
	// single pass over the chart of accounts.
	FinancialStatements(ctx context.Context) (*domain.FinancialStatements, error)
}
