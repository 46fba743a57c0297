package repositories

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregation queries that feed the
// statement engine.
type ReportingRepository interface {
	// GetAccountActivity returns the summed debit/credit movement per account
	// across items of POSTED entries only, joined with the chart of accounts
	// and ordered by account code. Accounts without posted activity are not
	// returned; callers treat them as zero.
	GetAccountActivity(ctx context.Context) ([]domain.AccountActivity, error)
}
