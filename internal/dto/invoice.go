package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineRequest defines one billable line of a new invoice.
type CreateInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create a new DRAFT invoice.
type CreateInvoiceRequest struct {
	ClientID      string                     `json:"clientID" binding:"required"`
	EngagementID  *string                    `json:"engagementID"`
	InvoiceNumber string                     `json:"invoiceNumber" binding:"required"`
	IssueDate     time.Time                  `json:"issueDate" binding:"required"`
	DueDate       time.Time                  `json:"dueDate" binding:"required"`
	TaxAmount     decimal.Decimal            `json:"taxAmount"`
	Notes         string                     `json:"notes"`
	Lines         []CreateInvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	ClientID       string                `json:"clientID"`
	EngagementID   *string               `json:"engagementID,omitempty"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	IssueDate      time.Time             `json:"issueDate"`
	DueDate        time.Time             `json:"dueDate"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	Total          decimal.Decimal       `json:"total"`
	Status         domain.InvoiceStatus  `json:"status"`
	Notes          string                `json:"notes,omitempty"`
	JournalEntryID *string               `json:"journalEntryID,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToInvoiceLineResponse converts a domain.InvoiceLine to InvoiceLineResponse DTO.
func ToInvoiceLineResponse(line *domain.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		LineID:      line.LineID,
		Description: line.Description,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		Amount:      line.Amount,
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(inv.Lines))
	for i, line := range inv.Lines {
		lines[i] = ToInvoiceLineResponse(&line)
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		ClientID:       inv.ClientID,
		EngagementID:   inv.EngagementID,
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      inv.IssueDate,
		DueDate:        inv.DueDate,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Status:         inv.Status,
		Notes:          inv.Notes,
		JournalEntryID: inv.JournalEntryID,
		Lines:          lines,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
	}
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int                   `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string               `form:"nextToken"`
	ClientID  *string               `form:"clientID"`
	Status    *domain.InvoiceStatus `form:"status"`
}

// ListInvoicesResponse wraps a page of invoices with the continuation token
// for the next page.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}
