package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry row.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Canceled EntryStatus = "CANCELED"
)

// JournalEntry is a row in the journal_entries table.
type JournalEntry struct {
	EntryID      string      `db:"entry_id"`
	EntryDate    time.Time   `db:"entry_date"`
	Description  string      `db:"description"`
	Reference    string      `db:"reference"`
	Status       EntryStatus `db:"status"`
	PostedAt     *time.Time  `db:"posted_at"`
	ClientID     *string     `db:"client_id"`
	EngagementID *string     `db:"engagement_id"`
	AuditFields
}

// JournalItem is a row in the journal_items table. The account_code column
// carries ON DELETE RESTRICT so referenced accounts cannot be removed; the
// entry_id column cascades with its entry.
type JournalItem struct {
	ItemID      string          `db:"item_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	AuditFields
}
