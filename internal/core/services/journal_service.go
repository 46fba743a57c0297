package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

var (
	ErrEntryMinItems   = errors.New("journal entry must have at least one item")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is inactive")
)

// journalService provides journal entry lifecycle operations.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildItems converts item requests into domain items, validating per-line
// invariants and resolving the referenced accounts.
func (s *journalService) buildItems(ctx context.Context, entryID string, reqs []dto.CreateItemRequest, userID string, now time.Time) ([]domain.JournalItem, error) {
	if len(reqs) < 1 {
		return nil, ErrEntryMinItems
	}

	codes := make([]string, 0, len(reqs))
	for _, r := range reqs {
		codes = append(codes, r.AccountCode)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, uniqueStrings(codes))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	items := make([]domain.JournalItem, len(reqs))
	for i, r := range reqs {
		acc, found := accounts[r.AccountCode]
		if !found {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, r.AccountCode)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: code %s", ErrAccountInactive, r.AccountCode)
		}

		item := domain.JournalItem{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountCode: r.AccountCode,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Description: r.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: item for account %s", err, r.AccountCode)
		}
		items[i] = item
	}
	return items, nil
}

// CreateEntry persists a new DRAFT entry with its items. Drafts are allowed
// to be unbalanced; the balance invariant is enforced at posting time.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	now := time.Now().UTC()
	entryID := uuid.NewString()

	items, err := s.buildItems(ctx, entryID, req.Items, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		Date:         req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		Status:       domain.Draft,
		ClientID:     req.ClientID,
		EngagementID: req.EngagementID,
		Items:        items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, items); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.Int("items", len(items)))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its items.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to fetch journal entry %s: %w", entryID, err)
	}
	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items for entry %s: %w", entryID, err)
	}
	entry.Items = items
	return entry, nil
}

// ListEntries retrieves a page of entry headers, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateDraftEntry updates the header fields of a DRAFT entry.
func (s *journalService) UpdateDraftEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Mutable() {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, entry.Status)
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntryHeader(ctx, *entry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ReplaceDraftItems swaps the full item set of a DRAFT entry.
func (s *journalService) ReplaceDraftItems(ctx context.Context, entryID string, itemReqs []dto.CreateItemRequest, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Mutable() {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrImmutable, entryID, entry.Status)
	}

	now := time.Now().UTC()
	items, err := s.buildItems(ctx, entryID, itemReqs, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.ReplaceItems(ctx, entryID, items); err != nil {
		logger.Error("Failed to replace journal items", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to replace items on entry %s: %w", entryID, err)
	}

	entry.Items = items
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	logger.Info("Journal items replaced", slog.String("entry_id", entryID), slog.Int("items", len(items)))
	return entry, nil
}

// PostEntry finalizes a DRAFT entry into the permanent ledger. The balance
// invariant is verified against the stored items inside the repository
// transaction, under a row lock, so a concurrent item replacement cannot
// slip an unbalanced entry through.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	posted, err := s.journalRepo.PostEntry(ctx, entryID, userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		case errors.Is(err, domain.ErrUnbalancedEntry), errors.Is(err, apperrors.ErrImmutable):
			return nil, err
		}
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("posted_by", userID))
	return posted, nil
}

// CancelEntry voids a DRAFT entry. There is no un-posting path; a POSTED
// entry stays in the ledger forever.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx)

	canceled, err := s.journalRepo.CancelEntry(ctx, entryID, userID, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		case errors.Is(err, apperrors.ErrImmutable):
			return nil, err
		}
		logger.Error("Failed to cancel journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to cancel journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry canceled", slog.String("entry_id", entryID))
	return canceled, nil
}

// uniqueStrings returns the unique values of in, preserving first-seen order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
