package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines one line of a new journal entry. Exactly one of
// debit/credit may be positive; both zero is allowed for memo lines.
type CreateItemRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines the data needed to create a new DRAFT entry.
type CreateEntryRequest struct {
	Date         time.Time           `json:"date" binding:"required"`
	Description  string              `json:"description"`
	Reference    string              `json:"reference"`
	ClientID     *string             `json:"clientID"`
	EngagementID *string             `json:"engagementID"`
	Items        []CreateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateEntryRequest defines the header fields editable on a DRAFT entry.
// Use pointers to distinguish zero-value updates from fields not provided.
type UpdateEntryRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
	Reference   *string    `json:"reference"`
}

// ItemResponse defines the data returned for a journal item.
type ItemResponse struct {
	ItemID      string          `json:"itemID"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string             `json:"entryID"`
	Date         time.Time          `json:"date"`
	Description  string             `json:"description"`
	Reference    string             `json:"reference,omitempty"`
	Status       domain.EntryStatus `json:"status"`
	PostedAt     *time.Time         `json:"postedAt,omitempty"`
	ClientID     *string            `json:"clientID,omitempty"`
	EngagementID *string            `json:"engagementID,omitempty"`
	Items        []ItemResponse     `json:"items,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	CreatedBy    string             `json:"createdBy"`
}

// ToItemResponse converts a domain.JournalItem to ItemResponse DTO.
func ToItemResponse(item *domain.JournalItem) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		LineNo:      item.LineNo,
		AccountCode: item.AccountCode,
		Debit:       item.Debit,
		Credit:      item.Credit,
		Description: item.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(entry *domain.JournalEntry) EntryResponse {
	items := make([]ItemResponse, len(entry.Items))
	for i, item := range entry.Items {
		items[i] = ToItemResponse(&item)
	}
	return EntryResponse{
		EntryID:      entry.EntryID,
		Date:         entry.Date,
		Description:  entry.Description,
		Reference:    entry.Reference,
		Status:       entry.Status,
		PostedAt:     entry.PostedAt,
		ClientID:     entry.ClientID,
		EngagementID: entry.EngagementID,
		Items:        items,
		CreatedAt:    entry.CreatedAt,
		CreatedBy:    entry.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entry headers with the continuation
// token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
