package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates where an invoice sits in its collection lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
	InvoiceVoid    InvoiceStatus = "VOID"
)

// Invoice is the accounts-receivable sub-ledger document. Once posted to the
// general ledger it carries a link to exactly one journal entry; the link is
// set once and the invoice is thereafter considered posted.
type Invoice struct {
	InvoiceID     string    `json:"invoiceID"` // Primary key (UUID)
	ClientID      string    `json:"clientID"`  // FK -> Client
	EngagementID  *string   `json:"engagementID"`
	InvoiceNumber string    `json:"invoiceNumber"` // Unique, user-facing
	IssueDate     time.Time `json:"issueDate"`
	DueDate       time.Time `json:"dueDate"`

	Subtotal  decimal.Decimal `json:"subtotal"`  // Sum of line amounts
	TaxAmount decimal.Decimal `json:"taxAmount"` // Flat tax on the invoice
	Total     decimal.Decimal `json:"total"`     // Subtotal + TaxAmount

	Status InvoiceStatus `json:"status"`
	Notes  string        `json:"notes"`

	// Set when the invoice has been posted to the general ledger.
	JournalEntryID *string `json:"journalEntryID"`

	Lines []InvoiceLine `json:"lines,omitempty"`
	AuditFields
}

// RecalculateTotals recomputes Subtotal and Total from the current lines.
// Called whenever lines change.
func (inv *Invoice) RecalculateTotals() {
	subtotal := decimal.Zero
	for _, line := range inv.Lines {
		subtotal = subtotal.Add(line.Amount)
	}
	inv.Subtotal = subtotal
	inv.Total = subtotal.Add(inv.TaxAmount)
}

// IsPosted reports whether the invoice is already linked to a journal entry.
func (inv *Invoice) IsPosted() bool {
	return inv.JournalEntryID != nil
}

// InvoiceLine is one billed line on an invoice. Amount is the cached product
// of quantity and unit price.
type InvoiceLine struct {
	LineID      string          `json:"lineID"`    // Primary key (UUID)
	InvoiceID   string          `json:"invoiceID"` // FK -> Invoice
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// ComputeAmount refreshes the cached line amount.
func (l *InvoiceLine) ComputeAmount() {
	l.Amount = l.Quantity.Mul(l.UnitPrice)
}
