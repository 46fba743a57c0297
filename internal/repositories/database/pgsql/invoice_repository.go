package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
	"github.com/ledgerline/practice_backend/internal/utils/pagination"
)

const invoiceColumns = `invoice_id, client_id, engagement_id, invoice_number, issue_date, due_date, subtotal, tax_amount, total, status, notes, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const invoiceLineColumns = `line_id, invoice_id, description, quantity, unit_price, amount`

const insertLineQuery = `
	INSERT INTO invoice_lines (` + invoiceLineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6);
`

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.ClientID,
		&m.EngagementID,
		&m.InvoiceNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Total,
		&m.Status,
		&m.Notes,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueLineInserts(batch *pgx.Batch, lines []domain.InvoiceLine) {
	for _, line := range lines {
		m := mapping.ToModelInvoiceLine(line)
		batch.Queue(insertLineQuery,
			m.LineID,
			m.InvoiceID,
			m.Description,
			m.Quantity,
			m.UnitPrice,
			m.Amount,
		)
	}
}

// SaveInvoice persists a new invoice and its lines in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.InvoiceID,
		m.ClientID,
		m.EngagementID,
		m.InvoiceNumber,
		m.IssueDate,
		m.DueDate,
		m.Subtotal,
		m.TaxAmount,
		m.Total,
		m.Status,
		m.Notes,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("invoice number %s: %w", m.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for invoice "+m.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}

	lines, err := r.findLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	invoice := mapping.ToDomainInvoice(m)
	invoice.Lines = lines
	return &invoice, nil
}

func (r *PgxInvoiceRepository) findLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelLines := []models.InvoiceLine{}
	for rows.Next() {
		var m models.InvoiceLine
		if err := rows.Scan(&m.LineID, &m.InvoiceID, &m.Description, &m.Quantity, &m.UnitPrice, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line row: %w", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice line rows: %w", err)
	}
	return mapping.ToDomainInvoiceLineSlice(modelLines), nil
}

// ListInvoices retrieves a page of invoice headers using token-based
// pagination on (issue_date, created_at), newest first. Nil filters match
// everything.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string, clientID *string, status *domain.InvoiceStatus) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []interface{}{}

	if clientID != nil && *clientID != "" {
		args = append(args, *clientID)
		query += ` AND client_id = $` + strconv.Itoa(len(args))
	}
	if status != nil && *status != "" {
		args = append(args, string(*status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastIssueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastIssueDate, lastCreatedAt)
		query += fmt.Sprintf(` AND (issue_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY issue_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		last := modelInvoices[limit-1]
		newToken := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelInvoices[:limit]
	}

	invoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, nextTokenVal, nil
}

// lockInvoice fetches the invoice row FOR UPDATE inside tx.
func (r *PgxInvoiceRepository) lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`
	m, err := scanInvoice(tx.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, apperrors.ErrNotFound
		}
		return m, fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
	}
	return m, nil
}

// ReplaceLines swaps the full line set of a DRAFT invoice and stores the
// recomputed totals from the passed invoice.
func (r *PgxInvoiceRepository) ReplaceLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockInvoice(ctx, tx, invoice.InvoiceID)
	if err != nil {
		return err
	}
	if locked.Status != models.InvoiceDraft {
		return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrImmutable, invoice.InvoiceID, locked.Status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines for invoice "+invoice.InvoiceID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for invoice "+invoice.InvoiceID, err)
	}

	m := mapping.ToModelInvoice(invoice)
	updateQuery := `
		UPDATE invoices
		SET subtotal = $2, tax_amount = $3, total = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, m.InvoiceID, m.Subtotal, m.TaxAmount, m.Total, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to update totals for invoice "+m.InvoiceID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus transitions the invoice status.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	query := `
		UPDATE invoices
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePostedEntryForInvoice creates the journal entry and its items and links
// the entry onto the invoice, all in one transaction. The invoice row is
// locked and the preconditions re-checked so two concurrent posters cannot
// both create an entry; the loser gets apperrors.ErrConflict and nothing is
// persisted for it. The UNIQUE constraint on invoices.journal_entry_id is the
// database-level backstop for the same guarantee.
func (r *PgxInvoiceRepository) SavePostedEntryForInvoice(ctx context.Context, invoiceID string, entry domain.JournalEntry, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockInvoice(ctx, tx, invoiceID)
	if err != nil {
		return err
	}
	if locked.Status != models.InvoiceSent || locked.JournalEntryID != nil {
		return fmt.Errorf("invoice %s already posted or not sent: %w", invoiceID, apperrors.ErrConflict)
	}

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
		return apperrors.NewAppError(500, "failed to insert journal entry for invoice "+invoiceID, err)
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for invoice "+invoiceID, err)
	}

	linkQuery := `
		UPDATE invoices
		SET journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1;
	`
	if _, err := tx.Exec(ctx, linkQuery, invoiceID, m.EntryID, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("invoice %s already linked to an entry: %w", invoiceID, apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to link entry to invoice "+invoiceID, err)
	}

	return r.Commit(ctx, tx)
}
