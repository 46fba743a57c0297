package dto

import (
	"time"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEngagementRequest defines the data needed to open an engagement.
type CreateEngagementRequest struct {
	ClientID       string                `json:"clientID" binding:"required"`
	Name           string                `json:"name" binding:"required"`
	EngagementType domain.EngagementType `json:"engagementType" binding:"required,oneof=AUDIT TAX ADVISORY"`
	StartDate      *time.Time            `json:"startDate"`
	Deadline       *time.Time            `json:"deadline"`
	LeadAuditor    *string               `json:"leadAuditor"`
	Methodology    string                `json:"methodology"`
	Year           int                   `json:"year" binding:"required"`
	Fee            *decimal.Decimal      `json:"fee"`
}

// UpdateEngagementRequest defines the updatable fields of an engagement. Nil
// fields are left unchanged.
type UpdateEngagementRequest struct {
	Name        *string                  `json:"name"`
	Status      *domain.EngagementStatus `json:"status" binding:"omitempty,oneof=PLANNING FIELDWORK REVIEW COMPLETED ARCHIVED"`
	StartDate   *time.Time               `json:"startDate"`
	Deadline    *time.Time               `json:"deadline"`
	LeadAuditor *string                  `json:"leadAuditor"`
	Methodology *string                  `json:"methodology"`
	Year        *int                     `json:"year"`
	Fee         *decimal.Decimal         `json:"fee"`
}

// EngagementResponse defines the data returned for an engagement.
type EngagementResponse struct {
	EngagementID         string                  `json:"engagementID"`
	ClientID             string                  `json:"clientID"`
	Name                 string                  `json:"name"`
	EngagementType       domain.EngagementType   `json:"engagementType"`
	Status               domain.EngagementStatus `json:"status"`
	StartDate            *time.Time              `json:"startDate,omitempty"`
	Deadline             *time.Time              `json:"deadline,omitempty"`
	LeadAuditor          *string                 `json:"leadAuditor,omitempty"`
	Methodology          string                  `json:"methodology"`
	CompletionPercentage int                     `json:"completionPercentage"`
	Year                 int                     `json:"year"`
	Fee                  *decimal.Decimal        `json:"fee,omitempty"`
	CreatedAt            time.Time               `json:"createdAt"`
	CreatedBy            string                  `json:"createdBy"`
}

// ToEngagementResponse converts a domain.Engagement to EngagementResponse DTO.
func ToEngagementResponse(e *domain.Engagement) EngagementResponse {
	return EngagementResponse{
		EngagementID:         e.EngagementID,
		ClientID:             e.ClientID,
		Name:                 e.Name,
		EngagementType:       e.EngagementType,
		Status:               e.Status,
		StartDate:            e.StartDate,
		Deadline:             e.Deadline,
		LeadAuditor:          e.LeadAuditor,
		Methodology:          e.Methodology,
		CompletionPercentage: e.CompletionPercentage,
		Year:                 e.Year,
		Fee:                  e.Fee,
		CreatedAt:            e.CreatedAt,
		CreatedBy:            e.CreatedBy,
	}
}

// ToListEngagementResponse converts a slice of domain.Engagement to DTOs.
func ToListEngagementResponse(engagements []domain.Engagement) []EngagementResponse {
	res := make([]EngagementResponse, len(engagements))
	for i, e := range engagements {
		res[i] = ToEngagementResponse(&e)
	}
	return res
}

// CreateTaskRequest defines the data needed to add a task to an engagement.
type CreateTaskRequest struct {
	EngagementID string     `json:"engagementID" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	AssignedTo   *string    `json:"assignedTo"`
	DueDate      *time.Time `json:"dueDate"`
	IsMilestone  bool       `json:"isMilestone"`
}

// UpdateTaskStatusRequest moves a task through its workflow states.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" binding:"required,oneof=PENDING IN_PROGRESS REVIEW DONE"`
}

// TaskResponse defines the data returned for an engagement task.
type TaskResponse struct {
	TaskID       string            `json:"taskID"`
	EngagementID string            `json:"engagementID"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	AssignedTo   *string           `json:"assignedTo,omitempty"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	Status       domain.TaskStatus `json:"status"`
	IsMilestone  bool              `json:"isMilestone"`
	PreparedBy   *string           `json:"preparedBy,omitempty"`
	PreparedAt   *time.Time        `json:"preparedAt,omitempty"`
	ReviewedBy   *string           `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time        `json:"reviewedAt,omitempty"`
}

// ToTaskResponse converts a domain.EngagementTask to TaskResponse DTO.
func ToTaskResponse(t *domain.EngagementTask) TaskResponse {
	return TaskResponse{
		TaskID:       t.TaskID,
		EngagementID: t.EngagementID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedTo:   t.AssignedTo,
		DueDate:      t.DueDate,
		Status:       t.Status,
		IsMilestone:  t.IsMilestone,
		PreparedBy:   t.PreparedBy,
		PreparedAt:   t.PreparedAt,
		ReviewedBy:   t.ReviewedBy,
		ReviewedAt:   t.ReviewedAt,
	}
}

// ToListTaskResponse converts a slice of domain.EngagementTask to DTOs.
func ToListTaskResponse(tasks []domain.EngagementTask) []TaskResponse {
	res := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		res[i] = ToTaskResponse(&t)
	}
	return res
}
