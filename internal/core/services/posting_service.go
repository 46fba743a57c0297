package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
)

// ErrLedgerMapping is returned when one of the configured ledger account
// codes does not resolve to an existing account. This is an operator
// configuration problem, not a caller problem.
var ErrLedgerMapping = errors.New("ledger account mapping is invalid")

// LedgerAccounts maps the posting roles to chart-of-accounts codes. The
// codes are configuration, not literals, so firms with a different chart can
// remap them without a code change.
type LedgerAccounts struct {
	Receivable string // Debited with the invoice total
	Revenue    string // Credited with the subtotal
	TaxPayable string // Credited with the tax amount, when nonzero
}

// postingService turns sub-ledger documents into balanced POSTED journal
// entries, exactly once per document.
type postingService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	accountRepo portsrepo.AccountReader
	clientRepo  portsrepo.ClientRepositoryFacade
	accounts    LedgerAccounts
}

// NewPostingService creates a new PostingService.
func NewPostingService(invoiceRepo portsrepo.InvoiceRepositoryFacade, accountRepo portsrepo.AccountReader, clientRepo portsrepo.ClientRepositoryFacade, accounts LedgerAccounts) portssvc.PostingSvcFacade {
	return &postingService{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		accounts:    accounts,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// resolveAccounts fetches the mapped accounts and verifies they all exist.
func (s *postingService) resolveAccounts(ctx context.Context) (map[string]domain.Account, error) {
	codes := []string{s.accounts.Receivable, s.accounts.Revenue, s.accounts.TaxPayable}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, uniqueStrings(codes))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger accounts: %w", err)
	}
	for _, code := range codes {
		if code == "" {
			return nil, fmt.Errorf("%w: a posting role has no account code configured", ErrLedgerMapping)
		}
		if _, found := accounts[code]; !found {
			return nil, fmt.Errorf("%w: account %s does not exist", ErrLedgerMapping, code)
		}
	}
	return accounts, nil
}

// PostInvoice derives the canonical sales entry from a SENT invoice:
//
//	Dr  Accounts Receivable   total
//	  Cr  Sales Revenue         subtotal
//	  Cr  Sales Tax Payable     tax (omitted when zero)
//
// and links it back onto the invoice. Invoices that are not SENT, or that
// already carry a link, are skipped with a (nil, nil) no-op so the operation
// can be retried freely.
func (s *postingService) PostInvoice(ctx context.Context, invoiceID string, actingUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}

	if invoice.Status != domain.InvoiceSent || invoice.IsPosted() {
		logger.Debug("Skipping invoice posting",
			slog.String("invoice_id", invoiceID),
			slog.String("status", string(invoice.Status)),
			slog.Bool("already_posted", invoice.IsPosted()))
		return nil, nil
	}

	if _, err := s.resolveAccounts(ctx); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, invoice.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client %s for invoice %s: %w", invoice.ClientID, invoiceID, err)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actingUserID,
	}

	items := []domain.JournalItem{
		{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      1,
			AccountCode: s.accounts.Receivable,
			Debit:       invoice.Total,
			Credit:      decimal.Zero,
			AuditFields: audit,
		},
		{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      2,
			AccountCode: s.accounts.Revenue,
			Debit:       decimal.Zero,
			Credit:      invoice.Subtotal,
			AuditFields: audit,
		},
	}
	if invoice.TaxAmount.IsPositive() {
		items = append(items, domain.JournalItem{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      3,
			AccountCode: s.accounts.TaxPayable,
			Debit:       decimal.Zero,
			Credit:      invoice.TaxAmount,
			AuditFields: audit,
		})
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		Date:         invoice.IssueDate,
		Description:  fmt.Sprintf("Invoice #%s - %s", invoice.InvoiceNumber, client.Name),
		Reference:    invoice.InvoiceNumber,
		Status:       domain.Posted,
		PostedAt:     &now,
		ClientID:     &invoice.ClientID,
		EngagementID: invoice.EngagementID,
		Items:        items,
		AuditFields:  audit,
	}

	// total = subtotal + tax holds by construction, but verify before the
	// entry touches the ledger.
	if !entry.IsBalanced() {
		return nil, fmt.Errorf("%w: invoice %s produced debits %s vs credits %s",
			domain.ErrUnbalancedEntry, invoiceID, entry.TotalDebits().String(), entry.TotalCredits().String())
	}

	err = s.invoiceRepo.SavePostedEntryForInvoice(ctx, invoiceID, entry, items)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent caller posted first; same outcome, so a no-op.
			logger.Info("Invoice was posted concurrently, skipping", slog.String("invoice_id", invoiceID))
			return nil, nil
		}
		logger.Error("Failed to post invoice to the ledger", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to post invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice posted to the ledger",
		slog.String("invoice_id", invoiceID),
		slog.String("entry_id", entryID),
		slog.String("total", invoice.Total.String()))
	return &entry, nil
}
