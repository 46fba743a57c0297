package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates where an invoice row sits in its lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
	InvoiceVoid    InvoiceStatus = "VOID"
)

// Invoice is a row in the invoices table. journal_entry_id has a UNIQUE
// constraint, which is what makes concurrent posting of the same invoice
// collapse to a single journal entry.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	ClientID       string          `db:"client_id"`
	EngagementID   *string         `db:"engagement_id"`
	InvoiceNumber  string          `db:"invoice_number"`
	IssueDate      time.Time       `db:"issue_date"`
	DueDate        time.Time       `db:"due_date"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	TaxAmount      decimal.Decimal `db:"tax_amount"`
	Total          decimal.Decimal `db:"total"`
	Status         InvoiceStatus   `db:"status"`
	Notes          string          `db:"notes"`
	JournalEntryID *string         `db:"journal_entry_id"`
	AuditFields
}

// InvoiceLine is a row in the invoice_lines table; rows cascade with their
// invoice.
type InvoiceLine struct {
	LineID      string          `db:"line_id"`
	InvoiceID   string          `db:"invoice_id"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Amount      decimal.Decimal `db:"amount"`
}
