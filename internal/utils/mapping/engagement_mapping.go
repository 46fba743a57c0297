package mapping

import (
	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/models"
)

// ToModelEngagement converts a domain Engagement to a model Engagement
func ToModelEngagement(d domain.Engagement) models.Engagement {
	return models.Engagement{
		EngagementID:         d.EngagementID,
		ClientID:             d.ClientID,
		Name:                 d.Name,
		EngagementType:       string(d.EngagementType),
		Status:               string(d.Status),
		StartDate:            d.StartDate,
		Deadline:             d.Deadline,
		LeadAuditor:          d.LeadAuditor,
		Methodology:          d.Methodology,
		CompletionPercentage: d.CompletionPercentage,
		Year:                 d.Year,
		Fee:                  d.Fee,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEngagement converts a model Engagement to a domain Engagement
func ToDomainEngagement(m models.Engagement) domain.Engagement {
	return domain.Engagement{
		EngagementID:         m.EngagementID,
		ClientID:             m.ClientID,
		Name:                 m.Name,
		EngagementType:       domain.EngagementType(m.EngagementType),
		Status:               domain.EngagementStatus(m.Status),
		StartDate:            m.StartDate,
		Deadline:             m.Deadline,
		LeadAuditor:          m.LeadAuditor,
		Methodology:          m.Methodology,
		CompletionPercentage: m.CompletionPercentage,
		Year:                 m.Year,
		Fee:                  m.Fee,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEngagementSlice converts a slice of model Engagements to domain Engagements
func ToDomainEngagementSlice(ms []models.Engagement) []domain.Engagement {
	ds := make([]domain.Engagement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEngagement(m)
	}
	return ds
}

// ToModelEngagementTask converts a domain EngagementTask to a model EngagementTask
func ToModelEngagementTask(d domain.EngagementTask) models.EngagementTask {
	return models.EngagementTask{
		TaskID:       d.TaskID,
		EngagementID: d.EngagementID,
		Title:        d.Title,
		Description:  d.Description,
		AssignedTo:   d.AssignedTo,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		IsMilestone:  d.IsMilestone,
		PreparedBy:   d.PreparedBy,
		PreparedAt:   d.PreparedAt,
		ReviewedBy:   d.ReviewedBy,
		ReviewedAt:   d.ReviewedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEngagementTask converts a model EngagementTask to a domain EngagementTask
func ToDomainEngagementTask(m models.EngagementTask) domain.EngagementTask {
	return domain.EngagementTask{
		TaskID:       m.TaskID,
		EngagementID: m.EngagementID,
		Title:        m.Title,
		Description:  m.Description,
		AssignedTo:   m.AssignedTo,
		DueDate:      m.DueDate,
		Status:       domain.TaskStatus(m.Status),
		IsMilestone:  m.IsMilestone,
		PreparedBy:   m.PreparedBy,
		PreparedAt:   m.PreparedAt,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEngagementTaskSlice converts a slice of model EngagementTasks to domain EngagementTasks
func ToDomainEngagementTaskSlice(ms []models.EngagementTask) []domain.EngagementTask {
	ds := make([]domain.EngagementTask, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEngagementTask(m)
	}
	return ds
}
