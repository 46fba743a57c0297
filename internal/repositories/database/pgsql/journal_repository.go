package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
	"github.com/ledgerline/practice_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, entry_date, description, reference, status, posted_at, client_id, engagement_id, created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, entry_id, line_no, account_code, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by`

const insertItemQuery = `
	INSERT INTO journal_items (` + itemColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&m.ClientID,
		&m.EngagementID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanItem(row pgx.Row) (models.JournalItem, error) {
	var m models.JournalItem
	err := row.Scan(
		&m.ItemID,
		&m.EntryID,
		&m.LineNo,
		&m.AccountCode,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// queueItemInserts adds one insert per item to the batch.
func queueItemInserts(batch *pgx.Batch, items []domain.JournalItem) {
	for _, item := range items {
		m := mapping.ToModelJournalItem(item)
		batch.Queue(insertItemQuery,
			m.ItemID,
			m.EntryID,
			m.LineNo,
			m.AccountCode,
			m.Debit,
			m.Credit,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry persists a new entry and its items in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.PostedAt,
		m.ClientID,
		m.EngagementID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindItemsByEntryID retrieves all items of an entry in line order.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE entry_id = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelItems := []models.JournalItem{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal item row: %w", err)
		}
		modelItems = append(modelItems, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal item rows: %w", err)
	}
	return mapping.ToDomainJournalItemSlice(modelItems), nil
}

// ListEntries retrieves a page of entry headers using token-based pagination,
// ordered by entry date then creation time, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt, fetchLimit)
		query := baseQuery + ` WHERE (entry_date, created_at) < ($1, $2) ` + orderByClause + ` LIMIT $3;`
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		args = append(args, fetchLimit)
		query := baseQuery + ` ` + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		newToken := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// lockEntry fetches the entry row FOR UPDATE inside tx.
func (r *PgxJournalRepository) lockEntry(ctx context.Context, tx pgx.Tx, entryID string) (models.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	m, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, apperrors.ErrNotFound
		}
		return m, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	return m, nil
}

// UpdateEntryHeader updates the editable header fields of a DRAFT entry.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntry(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entry.EntryID, locked.Status)
	}

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, query, m.EntryID, m.EntryDate, m.Description, m.Reference, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceItems swaps the full item set of a DRAFT entry. The entry row is
// locked first so posting cannot interleave with the swap.
func (r *PgxJournalRepository) ReplaceItems(ctx context.Context, entryID string, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntry(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, locked.Status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear items for entry "+entryID, err)
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry transitions a DRAFT entry to POSTED. The entry row is locked and
// the balance invariant re-verified against the stored items inside the same
// transaction, so the posted snapshot is exactly what was checked.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if locked.Status != models.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, locked.Status)
	}

	var totalDebits, totalCredits decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_items
		WHERE entry_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, entryID).Scan(&totalDebits, &totalCredits); err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum items for entry "+entryID, err)
	}
	if !totalDebits.Equal(totalCredits) {
		return nil, fmt.Errorf("%w: debits %s vs credits %s",
			domain.ErrUnbalancedEntry, totalDebits.String(), totalCredits.String())
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, models.Posted, now, userID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	locked.Status = models.Posted
	locked.PostedAt = &now
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = userID
	entry := mapping.ToDomainJournalEntry(locked)
	return &entry, nil
}

// CancelEntry transitions a DRAFT entry to CANCELED.
func (r *PgxJournalRepository) CancelEntry(ctx context.Context, entryID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntry(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if locked.Status != models.Draft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, locked.Status)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, models.Canceled, now, userID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel journal entry "+entryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	locked.Status = models.Canceled
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = userID
	entry := mapping.ToDomainJournalEntry(locked)
	return &entry, nil
}
