package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
)

const engagementColumns = `engagement_id, client_id, name, engagement_type, status, start_date, deadline, lead_auditor, methodology, completion_percentage, year, fee, created_at, created_by, last_updated_at, last_updated_by`

const taskColumns = `task_id, engagement_id, title, description, assigned_to, due_date, status, is_milestone, prepared_by, prepared_at, reviewed_by, reviewed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxEngagementRepository struct {
	BaseRepository
}

// newPgxEngagementRepository creates a new repository for engagement data.
func newPgxEngagementRepository(pool *pgxpool.Pool) portsrepo.EngagementRepositoryFacade {
	return &PgxEngagementRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EngagementRepositoryFacade = (*PgxEngagementRepository)(nil)

func scanEngagement(row pgx.Row) (models.Engagement, error) {
	var m models.Engagement
	err := row.Scan(
		&m.EngagementID,
		&m.ClientID,
		&m.Name,
		&m.EngagementType,
		&m.Status,
		&m.StartDate,
		&m.Deadline,
		&m.LeadAuditor,
		&m.Methodology,
		&m.CompletionPercentage,
		&m.Year,
		&m.Fee,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanTask(row pgx.Row) (models.EngagementTask, error) {
	var m models.EngagementTask
	err := row.Scan(
		&m.TaskID,
		&m.EngagementID,
		&m.Title,
		&m.Description,
		&m.AssignedTo,
		&m.DueDate,
		&m.Status,
		&m.IsMilestone,
		&m.PreparedBy,
		&m.PreparedAt,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEngagement persists a new engagement.
func (r *PgxEngagementRepository) SaveEngagement(ctx context.Context, engagement domain.Engagement) error {
	m := mapping.ToModelEngagement(engagement)
	query := `
		INSERT INTO engagements (` + engagementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EngagementID,
		m.ClientID,
		m.Name,
		m.EngagementType,
		m.Status,
		m.StartDate,
		m.Deadline,
		m.LeadAuditor,
		m.Methodology,
		m.CompletionPercentage,
		m.Year,
		m.Fee,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert engagement "+m.EngagementID, err)
	}
	return nil
}

// FindEngagementByID retrieves an engagement by ID.
func (r *PgxEngagementRepository) FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE engagement_id = $1;`

	m, err := scanEngagement(r.Pool.QueryRow(ctx, query, engagementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find engagement %s: %w", engagementID, err)
	}

	engagement := mapping.ToDomainEngagement(m)
	return &engagement, nil
}

// ListEngagementsByClient retrieves a client's engagements, newest first.
func (r *PgxEngagementRepository) ListEngagementsByClient(ctx context.Context, clientID string) ([]domain.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE client_id = $1 ORDER BY year DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query engagements", err)
	}
	defer rows.Close()

	modelEngagements := []models.Engagement{}
	for rows.Next() {
		m, scanErr := scanEngagement(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan engagement row", scanErr)
		}
		modelEngagements = append(modelEngagements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating engagement rows", err)
	}
	return mapping.ToDomainEngagementSlice(modelEngagements), nil
}

// UpdateEngagement updates an existing engagement's details.
func (r *PgxEngagementRepository) UpdateEngagement(ctx context.Context, engagement domain.Engagement) error {
	m := mapping.ToModelEngagement(engagement)
	query := `
		UPDATE engagements
		SET name = $2, engagement_type = $3, status = $4, start_date = $5,
		    deadline = $6, lead_auditor = $7, methodology = $8, year = $9,
		    fee = $10, last_updated_at = $11, last_updated_by = $12
		WHERE engagement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.EngagementID,
		m.Name,
		m.EngagementType,
		m.Status,
		m.StartDate,
		m.Deadline,
		m.LeadAuditor,
		m.Methodology,
		m.Year,
		m.Fee,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update engagement "+m.EngagementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEngagementProgress writes only the denormalized completion percentage.
func (r *PgxEngagementRepository) UpdateEngagementProgress(ctx context.Context, engagementID string, percentage int, userID string, now time.Time) error {
	query := `
		UPDATE engagements
		SET completion_percentage = $2, last_updated_at = $3, last_updated_by = $4
		WHERE engagement_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, engagementID, percentage, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update progress for engagement "+engagementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTask persists a new engagement task.
func (r *PgxEngagementRepository) SaveTask(ctx context.Context, task domain.EngagementTask) error {
	m := mapping.ToModelEngagementTask(task)
	query := `
		INSERT INTO engagement_tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.EngagementID,
		m.Title,
		m.Description,
		m.AssignedTo,
		m.DueDate,
		m.Status,
		m.IsMilestone,
		m.PreparedBy,
		m.PreparedAt,
		m.ReviewedBy,
		m.ReviewedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert task "+m.TaskID, err)
	}
	return nil
}

// FindTaskByID retrieves a task by ID.
func (r *PgxEngagementRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.EngagementTask, error) {
	query := `SELECT ` + taskColumns + ` FROM engagement_tasks WHERE task_id = $1;`

	m, err := scanTask(r.Pool.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task %s: %w", taskID, err)
	}

	task := mapping.ToDomainEngagementTask(m)
	return &task, nil
}

// ListTasksByEngagement retrieves all tasks of an engagement in creation order.
func (r *PgxEngagementRepository) ListTasksByEngagement(ctx context.Context, engagementID string) ([]domain.EngagementTask, error) {
	query := `SELECT ` + taskColumns + ` FROM engagement_tasks WHERE engagement_id = $1 ORDER BY created_at, task_id;`

	rows, err := r.Pool.Query(ctx, query, engagementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	defer rows.Close()

	modelTasks := []models.EngagementTask{}
	for rows.Next() {
		m, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan task row", scanErr)
		}
		modelTasks = append(modelTasks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating task rows", err)
	}
	return mapping.ToDomainEngagementTaskSlice(modelTasks), nil
}

// UpdateTask updates an existing task.
func (r *PgxEngagementRepository) UpdateTask(ctx context.Context, task domain.EngagementTask) error {
	m := mapping.ToModelEngagementTask(task)
	query := `
		UPDATE engagement_tasks
		SET title = $2, description = $3, assigned_to = $4, due_date = $5,
		    status = $6, is_milestone = $7, prepared_by = $8, prepared_at = $9,
		    reviewed_by = $10, reviewed_at = $11, last_updated_at = $12, last_updated_by = $13
		WHERE task_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TaskID,
		m.Title,
		m.Description,
		m.AssignedTo,
		m.DueDate,
		m.Status,
		m.IsMilestone,
		m.PreparedBy,
		m.PreparedAt,
		m.ReviewedBy,
		m.ReviewedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update task "+m.TaskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTask removes a task.
func (r *PgxEngagementRepository) DeleteTask(ctx context.Context, taskID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM engagement_tasks WHERE task_id = $1;`, taskID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete task "+taskID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountTasks returns total and DONE task counts for an engagement.
func (r *PgxEngagementRepository) CountTasks(ctx context.Context, engagementID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'DONE')
		FROM engagement_tasks
		WHERE engagement_id = $1;
	`
	var total, done int
	if err := r.Pool.QueryRow(ctx, query, engagementID).Scan(&total, &done); err != nil {
		return 0, 0, apperrors.NewAppError(500, "failed to count tasks for engagement "+engagementID, err)
	}
	return total, done, nil
}
