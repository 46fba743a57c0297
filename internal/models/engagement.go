package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Engagement is a row in the engagements table. completion_percentage is
// denormalized from task state and rewritten by the service layer.
type Engagement struct {
	EngagementID         string           `db:"engagement_id"`
	ClientID             string           `db:"client_id"`
	Name                 string           `db:"name"`
	EngagementType       string           `db:"engagement_type"`
	Status               string           `db:"status"`
	StartDate            *time.Time       `db:"start_date"`
	Deadline             *time.Time       `db:"deadline"`
	LeadAuditor          *string          `db:"lead_auditor"`
	Methodology          string           `db:"methodology"`
	CompletionPercentage int              `db:"completion_percentage"`
	Year                 int              `db:"year"`
	Fee                  *decimal.Decimal `db:"fee"`
	AuditFields
}

// EngagementTask is a row in the engagement_tasks table; rows cascade with
// their engagement.
type EngagementTask struct {
	TaskID       string     `db:"task_id"`
	EngagementID string     `db:"engagement_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	AssignedTo   *string    `db:"assigned_to"`
	DueDate      *time.Time `db:"due_date"`
	Status       string     `db:"status"`
	IsMilestone  bool       `db:"is_milestone"`
	PreparedBy   *string    `db:"prepared_by"`
	PreparedAt   *time.Time `db:"prepared_at"`
	ReviewedBy   *string    `db:"reviewed_by"`
	ReviewedAt   *time.Time `db:"reviewed_at"`
	AuditFields
}
