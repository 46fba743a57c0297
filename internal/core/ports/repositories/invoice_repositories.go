package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices using token-based
	// pagination, newest first. Nil filters match everything.
	ListInvoices(ctx context.Context, limit int, nextToken *string, clientID *string, status *domain.InvoiceStatus) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice and its lines atomically. Returns
	// apperrors.ErrDuplicate when the invoice number already exists.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// ReplaceLines atomically swaps the lines of a DRAFT invoice and updates
	// the recomputed subtotal/total columns.
	ReplaceLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// UpdateInvoiceStatus transitions the invoice status.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error
}

// InvoicePostingSupport defines the transactional write used by the posting
// service.
type InvoicePostingSupport interface {
	// SavePostedEntryForInvoice atomically creates a POSTED journal entry with
	// its items and links it onto the invoice. The invoice row is locked and
	// the posting preconditions (status SENT, no existing link) re-checked
	// inside the transaction; apperrors.ErrConflict is returned when a
	// concurrent caller got there first, so callers can treat it as a no-op.
	// Nothing is persisted on failure.
	SavePostedEntryForInvoice(ctx context.Context, invoiceID string, entry domain.JournalEntry, items []domain.JournalItem) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	InvoicePostingSupport
}
