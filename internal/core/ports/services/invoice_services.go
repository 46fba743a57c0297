package services

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// InvoiceSvcFacade defines the accounts-receivable sub-ledger operations.
type InvoiceSvcFacade interface {
	// CreateInvoice persists a new DRAFT invoice with its lines; totals are
	// computed from the lines.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error)

	// GetInvoiceByID retrieves an invoice with its lines.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ReplaceDraftLines swaps the lines of a DRAFT invoice and recomputes its
	// totals.
	ReplaceDraftLines(ctx context.Context, invoiceID string, lines []dto.CreateInvoiceLineRequest, userID string) (*domain.Invoice, error)

	// FinalizeAndSend locks a DRAFT invoice (DRAFT -> SENT) and posts it to
	// the general ledger.
	FinalizeAndSend(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)
}

// PostingSvcFacade translates sub-ledger documents into balanced journal
// entries, exactly once per document.
type PostingSvcFacade interface {
	// PostInvoice derives a balanced journal entry from a SENT invoice and
	// links it back. Calling it for an invoice that is not SENT or is already
	// posted is a no-op returning (nil, nil), which makes at-least-once
	// invocation by callers safe.
	PostInvoice(ctx context.Context, invoiceID string, actingUserID string) (*domain.JournalEntry, error)
}
