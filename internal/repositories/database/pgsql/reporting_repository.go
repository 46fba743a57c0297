package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity aggregates posted debit/credit movement per account.
// Accounts with no posted activity are absent from the result; the statement
// layer treats absence and zero the same way.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context) ([]domain.AccountActivity, error) {
	query := `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(ji.debit), 0) AS debits,
		       COALESCE(SUM(ji.credit), 0) AS credits
		FROM accounts a
		JOIN journal_items ji ON ji.account_code = a.code
		JOIN journal_entries je ON je.entry_id = ji.entry_id
		WHERE je.status = 'POSTED'
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	activity := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		var accountType string
		if err := rows.Scan(&a.Code, &a.Name, &accountType, &a.Debits, &a.Credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		a.AccountType = domain.AccountType(accountType)
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activity, nil
}
