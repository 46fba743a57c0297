package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EngagementStatus tracks an engagement through the audit workflow.
type EngagementStatus string

const (
	EngagementPlanning  EngagementStatus = "PLANNING"
	EngagementFieldwork EngagementStatus = "FIELDWORK"
	EngagementReview    EngagementStatus = "REVIEW"
	EngagementCompleted EngagementStatus = "COMPLETED"
	EngagementArchived  EngagementStatus = "ARCHIVED"
)

// EngagementType classifies the service being delivered.
type EngagementType string

const (
	EngagementAudit    EngagementType = "AUDIT"
	EngagementTax      EngagementType = "TAX"
	EngagementAdvisory EngagementType = "ADVISORY"
)

// Engagement is a single piece of client work (an audit, a tax year, etc).
// CompletionPercentage is denormalized from task state for dashboard reads;
// it is recomputed by an explicit service call after every task mutation
// rather than by an implicit hook, keeping the data flow traceable.
type Engagement struct {
	EngagementID         string           `json:"engagementID"` // Primary key (UUID)
	ClientID             string           `json:"clientID"`     // FK -> Client
	Name                 string           `json:"name"`
	EngagementType       EngagementType   `json:"engagementType"`
	Status               EngagementStatus `json:"status"`
	StartDate            *time.Time       `json:"startDate"`
	Deadline             *time.Time       `json:"deadline"`
	LeadAuditor          *string          `json:"leadAuditor"` // UserID reference
	Methodology          string           `json:"methodology"` // e.g. "GAAP", "IFRS"
	CompletionPercentage int              `json:"completionPercentage"`
	Year                 int              `json:"year"`
	Fee                  *decimal.Decimal `json:"fee"`
	AuditFields
}

// TaskStatus tracks a single engagement task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskDone       TaskStatus = "DONE"
)

var (
	// ErrReviewerIsPreparer is returned when the same user attempts both
	// sign-off levels on a task.
	ErrReviewerIsPreparer = errors.New("the preparer cannot be the reviewer")

	// ErrNotPrepared is returned when review sign-off is attempted before
	// preparer sign-off.
	ErrNotPrepared = errors.New("task must be prepared before review")
)

// EngagementTask is a unit of engagement work with two-level sign-off:
// a preparer signs first (task moves to REVIEW), then a different user
// reviews (task moves to DONE).
type EngagementTask struct {
	TaskID       string     `json:"taskID"`       // Primary key (UUID)
	EngagementID string     `json:"engagementID"` // FK -> Engagement
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AssignedTo   *string    `json:"assignedTo"` // UserID reference
	DueDate      *time.Time `json:"dueDate"`
	Status       TaskStatus `json:"status"`
	IsMilestone  bool       `json:"isMilestone"`

	PreparedBy *string    `json:"preparedBy"`
	PreparedAt *time.Time `json:"preparedAt"`
	ReviewedBy *string    `json:"reviewedBy"`
	ReviewedAt *time.Time `json:"reviewedAt"`
	AuditFields
}

// SignOffPrepare records first-level sign-off and moves the task to REVIEW.
func (t *EngagementTask) SignOffPrepare(userID string, now time.Time) {
	t.PreparedBy = &userID
	t.PreparedAt = &now
	t.Status = TaskReview
}

// SignOffReview records second-level sign-off and moves the task to DONE.
// The reviewer must differ from the preparer, and the task must already be
// prepared.
func (t *EngagementTask) SignOffReview(userID string, now time.Time) error {
	if t.PreparedBy == nil {
		return ErrNotPrepared
	}
	if *t.PreparedBy == userID {
		return ErrReviewerIsPreparer
	}
	t.ReviewedBy = &userID
	t.ReviewedAt = &now
	t.Status = TaskDone
	return nil
}
