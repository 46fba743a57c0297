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
	"github.com/ledgerline/practice_backend/internal/dto"
)

var (
	ErrInvoiceMinLines = errors.New("invoice must have at least one line")
	ErrInvoiceNotDraft = errors.New("invoice is not in DRAFT status")
)

// invoiceService provides accounts-receivable sub-ledger operations.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	postingSvc  portssvc.PostingSvcFacade
}

// NewInvoiceService creates a new InvoiceService. The posting service is
// injected so FinalizeAndSend can push the invoice into the general ledger.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade, postingSvc portssvc.PostingSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		postingSvc:  postingSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildLines converts line requests into domain lines with computed amounts.
func buildLines(invoiceID string, reqs []dto.CreateInvoiceLineRequest) ([]domain.InvoiceLine, error) {
	if len(reqs) < 1 {
		return nil, ErrInvoiceMinLines
	}
	lines := make([]domain.InvoiceLine, len(reqs))
	for i, r := range reqs {
		if r.Quantity.IsNegative() || r.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line quantity and unit price must not be negative", apperrors.ErrValidation)
		}
		line := domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		}
		line.ComputeAmount()
		lines[i] = line
	}
	return lines, nil
}

// CreateInvoice persists a new DRAFT invoice; totals are derived from the
// lines, never taken from the caller.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, creatorUserID string) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	if req.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: tax amount must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s does not exist", apperrors.ErrValidation, req.ClientID)
		}
		return nil, fmt.Errorf("failed to fetch client %s: %w", req.ClientID, err)
	}

	now := time.Now().UTC()
	invoiceID := uuid.NewString()

	lines, err := buildLines(invoiceID, req.Lines)
	if err != nil {
		return nil, err
	}

	invoice := domain.Invoice{
		InvoiceID:     invoiceID,
		ClientID:      req.ClientID,
		EngagementID:  req.EngagementID,
		InvoiceNumber: req.InvoiceNumber,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		TaxAmount:     req.TaxAmount,
		Status:        domain.InvoiceDraft,
		Notes:         req.Notes,
		Lines:         lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	invoice.RecalculateTotals()

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, req.InvoiceNumber)
		}
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", invoice.Total.String()))
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice with its lines.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("invoice %s not found", invoiceID))
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoices retrieves a page of invoices, newest first.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, limit, params.NextToken, params.ClientID, params.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := &dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return resp, nil
}

// ReplaceDraftLines swaps the lines of a DRAFT invoice and recomputes totals.
func (s *invoiceService) ReplaceDraftLines(ctx context.Context, invoiceID string, lineReqs []dto.CreateInvoiceLineRequest, userID string) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}

	lines, err := buildLines(invoiceID, lineReqs)
	if err != nil {
		return nil, err
	}

	invoice.Lines = lines
	invoice.RecalculateTotals()
	invoice.LastUpdatedAt = time.Now().UTC()
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.ReplaceLines(ctx, *invoice, lines); err != nil {
		logger.Error("Failed to replace invoice lines", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to replace lines on invoice %s: %w", invoiceID, err)
	}

	logger.Info("Invoice lines replaced", slog.String("invoice_id", invoiceID), slog.Int("lines", len(lines)))
	return invoice, nil
}

// FinalizeAndSend locks a DRAFT invoice into SENT and posts it to the general
// ledger. The posting call is idempotent, so a retry after a partial failure
// converges rather than double-posting.
func (s *invoiceService) FinalizeAndSend(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	logger := s.GetLogger(ctx)

	invoice, err := s.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotDraft, invoiceID, invoice.Status)
	}
	if invoice.Total.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: invoice total must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, domain.InvoiceSent, userID, now); err != nil {
		logger.Error("Failed to mark invoice as sent", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to mark invoice %s as sent: %w", invoiceID, err)
	}

	if _, err := s.postingSvc.PostInvoice(ctx, invoiceID, userID); err != nil {
		// The invoice stays SENT; posting can be retried safely.
		logger.Error("Failed to post finalized invoice to the ledger", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("invoice %s was sent but posting failed: %w", invoiceID, err)
	}

	logger.Info("Invoice finalized and posted", slog.String("invoice_id", invoiceID))
	return s.GetInvoiceByID(ctx, invoiceID)
}
