package mapping

import (
	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryDate:    d.Date,
		Description:  d.Description,
		Reference:    d.Reference,
		Status:       models.EntryStatus(d.Status),
		PostedAt:     d.PostedAt,
		ClientID:     d.ClientID,
		EngagementID: d.EngagementID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		Date:         m.EntryDate,
		Description:  m.Description,
		Reference:    m.Reference,
		Status:       domain.EntryStatus(m.Status),
		PostedAt:     m.PostedAt,
		ClientID:     m.ClientID,
		EngagementID: m.EngagementID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalItem converts a domain JournalItem to a model JournalItem
func ToModelJournalItem(d domain.JournalItem) models.JournalItem {
	return models.JournalItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalItem converts a model JournalItem to a domain JournalItem
func ToDomainJournalItem(m models.JournalItem) domain.JournalItem {
	return domain.JournalItem{
		ItemID:      m.ItemID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalItemSlice converts a slice of model JournalItems to domain JournalItems
func ToDomainJournalItemSlice(ms []models.JournalItem) []domain.JournalItem {
	ds := make([]domain.JournalItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalItem(m)
	}
	return ds
}
