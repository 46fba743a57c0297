package services

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its items.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entry headers.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry persists a new DRAFT entry with its items after validating
	// the per-line invariants. Balance is not required until posting.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry updates header fields of a DRAFT entry.
	UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// ReplaceDraftItems swaps the item set of a DRAFT entry.
	ReplaceDraftItems(ctx context.Context, entryID string, items []dto.CreateItemRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry finalizes a DRAFT entry into the permanent ledger. Fails with
	// domain.ErrUnbalancedEntry when debits != credits and
	// apperrors.ErrImmutable when the entry is already POSTED or CANCELED.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// CancelEntry voids a DRAFT entry. POSTED entries cannot be canceled;
	// there is no un-posting path.
	CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
