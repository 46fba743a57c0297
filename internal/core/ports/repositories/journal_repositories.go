package repositories

import (
	"context"
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal data
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindItemsByEntryID retrieves all items belonging to an entry, in
	// insertion order.
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalItem, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination, newest first. It returns the entries, a token for the next
	// page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal data
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its items atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalItem) error

	// UpdateEntryHeader updates date, description and reference of a DRAFT
	// entry. Returns apperrors.ErrImmutable if the entry is not a draft.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceItems atomically swaps the full item set of a DRAFT entry,
	// locking the entry row first. Returns apperrors.ErrImmutable if the
	// entry is not a draft.
	ReplaceItems(ctx context.Context, entryID string, items []domain.JournalItem) error

	// PostEntry transitions a DRAFT entry to POSTED. The entry row is locked,
	// the balance invariant is re-verified against the stored items inside
	// the same transaction, and the posted timestamp is stamped. Returns
	// domain.ErrUnbalancedEntry when debits != credits and
	// apperrors.ErrImmutable when the entry is not a draft.
	PostEntry(ctx context.Context, entryID string, userID string, now time.Time) (*domain.JournalEntry, error)

	// CancelEntry transitions a DRAFT entry to CANCELED. Returns
	// apperrors.ErrImmutable when the entry is not a draft.
	CancelEntry(ctx context.Context, entryID string, userID string, now time.Time) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
