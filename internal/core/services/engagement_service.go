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

// engagementService provides engagement and task workflow operations.
// Engagement progress is denormalized; every task mutation path here ends
// with an explicit RefreshProgress call rather than relying on implicit
// storage-side hooks, so the recomputation is visible in the call graph.
type engagementService struct {
	BaseService
	engagementRepo portsrepo.EngagementRepositoryFacade
	clientRepo     portsrepo.ClientRepositoryFacade
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(engagementRepo portsrepo.EngagementRepositoryFacade, clientRepo portsrepo.ClientRepositoryFacade) portssvc.EngagementSvcFacade {
	return &engagementService{
		engagementRepo: engagementRepo,
		clientRepo:     clientRepo,
	}
}

var _ portssvc.EngagementSvcFacade = (*engagementService)(nil)

// CreateEngagement opens a new engagement for a client.
func (s *engagementService) CreateEngagement(ctx context.Context, req dto.CreateEngagementRequest, creatorUserID string) (*domain.Engagement, error) {
	logger := s.GetLogger(ctx)

	if _, err := s.clientRepo.FindClientByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s does not exist", apperrors.ErrValidation, req.ClientID)
		}
		return nil, fmt.Errorf("failed to fetch client %s: %w", req.ClientID, err)
	}

	now := time.Now().UTC()
	engagement := domain.Engagement{
		EngagementID:   uuid.NewString(),
		ClientID:       req.ClientID,
		Name:           req.Name,
		EngagementType: req.EngagementType,
		Status:         domain.EngagementPlanning,
		StartDate:      req.StartDate,
		Deadline:       req.Deadline,
		LeadAuditor:    req.LeadAuditor,
		Methodology:    req.Methodology,
		Year:           req.Year,
		Fee:            req.Fee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.engagementRepo.SaveEngagement(ctx, engagement); err != nil {
		logger.Error("Failed to save engagement", slog.String("error", err.Error()), slog.String("engagement_id", engagement.EngagementID))
		return nil, fmt.Errorf("failed to save engagement: %w", err)
	}

	logger.Info("Engagement created", slog.String("engagement_id", engagement.EngagementID), slog.String("client_id", req.ClientID))
	return &engagement, nil
}

// GetEngagementByID retrieves an engagement.
func (s *engagementService) GetEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error) {
	engagement, err := s.engagementRepo.FindEngagementByID(ctx, engagementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("engagement %s not found", engagementID))
		}
		return nil, fmt.Errorf("failed to fetch engagement %s: %w", engagementID, err)
	}
	return engagement, nil
}

// ListEngagementsByClient retrieves a client's engagements.
func (s *engagementService) ListEngagementsByClient(ctx context.Context, clientID string) ([]domain.Engagement, error) {
	engagements, err := s.engagementRepo.ListEngagementsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements for client %s: %w", clientID, err)
	}
	return engagements, nil
}

// UpdateEngagement applies the non-nil fields of req to an existing
// engagement.
func (s *engagementService) UpdateEngagement(ctx context.Context, engagementID string, req dto.UpdateEngagementRequest, userID string) (*domain.Engagement, error) {
	logger := s.GetLogger(ctx)

	engagement, err := s.GetEngagementByID(ctx, engagementID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		engagement.Name = *req.Name
		updated = true
	}
	if req.Status != nil {
		engagement.Status = *req.Status
		updated = true
	}
	if req.StartDate != nil {
		engagement.StartDate = req.StartDate
		updated = true
	}
	if req.Deadline != nil {
		engagement.Deadline = req.Deadline
		updated = true
	}
	if req.LeadAuditor != nil {
		engagement.LeadAuditor = req.LeadAuditor
		updated = true
	}
	if req.Methodology != nil {
		engagement.Methodology = *req.Methodology
		updated = true
	}
	if req.Year != nil {
		engagement.Year = *req.Year
		updated = true
	}
	if req.Fee != nil {
		engagement.Fee = req.Fee
		updated = true
	}
	if !updated {
		return engagement, nil
	}

	engagement.LastUpdatedAt = time.Now().UTC()
	engagement.LastUpdatedBy = userID

	if err := s.engagementRepo.UpdateEngagement(ctx, *engagement); err != nil {
		logger.Error("Failed to update engagement", slog.String("error", err.Error()), slog.String("engagement_id", engagementID))
		return nil, fmt.Errorf("failed to update engagement %s: %w", engagementID, err)
	}

	logger.Info("Engagement updated", slog.String("engagement_id", engagementID))
	return engagement, nil
}

// CreateTask adds a task to an engagement and refreshes its progress.
func (s *engagementService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.EngagementTask, error) {
	logger := s.GetLogger(ctx)

	if _, err := s.GetEngagementByID(ctx, req.EngagementID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := domain.EngagementTask{
		TaskID:       uuid.NewString(),
		EngagementID: req.EngagementID,
		Title:        req.Title,
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		DueDate:      req.DueDate,
		Status:       domain.TaskPending,
		IsMilestone:  req.IsMilestone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.engagementRepo.SaveTask(ctx, task); err != nil {
		logger.Error("Failed to save task", slog.String("error", err.Error()), slog.String("task_id", task.TaskID))
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	if _, err := s.RefreshProgress(ctx, req.EngagementID, creatorUserID); err != nil {
		return nil, err
	}
	logger.Info("Task created", slog.String("task_id", task.TaskID), slog.String("engagement_id", req.EngagementID))
	return &task, nil
}

// ListTasks retrieves an engagement's tasks.
func (s *engagementService) ListTasks(ctx context.Context, engagementID string) ([]domain.EngagementTask, error) {
	tasks, err := s.engagementRepo.ListTasksByEngagement(ctx, engagementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for engagement %s: %w", engagementID, err)
	}
	return tasks, nil
}

func (s *engagementService) getTask(ctx context.Context, taskID string) (*domain.EngagementTask, error) {
	task, err := s.engagementRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("task %s not found", taskID))
		}
		return nil, fmt.Errorf("failed to fetch task %s: %w", taskID, err)
	}
	return task, nil
}

// UpdateTaskStatus moves a task through its workflow states and refreshes
// engagement progress.
func (s *engagementService) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, userID string) (*domain.EngagementTask, error) {
	logger := s.GetLogger(ctx)

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	task.LastUpdatedAt = time.Now().UTC()
	task.LastUpdatedBy = userID

	if err := s.engagementRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to update task", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	if _, err := s.RefreshProgress(ctx, task.EngagementID, userID); err != nil {
		return nil, err
	}
	return task, nil
}

// SignOffPrepare records first-level sign-off.
func (s *engagementService) SignOffPrepare(ctx context.Context, taskID string, userID string) (*domain.EngagementTask, error) {
	logger := s.GetLogger(ctx)

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.SignOffPrepare(userID, now)
	task.LastUpdatedAt = now
	task.LastUpdatedBy = userID

	if err := s.engagementRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to record prepare sign-off", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	if _, err := s.RefreshProgress(ctx, task.EngagementID, userID); err != nil {
		return nil, err
	}
	logger.Info("Task prepared", slog.String("task_id", taskID), slog.String("prepared_by", userID))
	return task, nil
}

// SignOffReview records second-level sign-off. The domain enforces that the
// task is already prepared and the reviewer differs from the preparer.
func (s *engagementService) SignOffReview(ctx context.Context, taskID string, userID string) (*domain.EngagementTask, error) {
	logger := s.GetLogger(ctx)

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := task.SignOffReview(userID, now); err != nil {
		return nil, err
	}
	task.LastUpdatedAt = now
	task.LastUpdatedBy = userID

	if err := s.engagementRepo.UpdateTask(ctx, *task); err != nil {
		logger.Error("Failed to record review sign-off", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	if _, err := s.RefreshProgress(ctx, task.EngagementID, userID); err != nil {
		return nil, err
	}
	logger.Info("Task reviewed", slog.String("task_id", taskID), slog.String("reviewed_by", userID))
	return task, nil
}

// DeleteTask removes a task and refreshes engagement progress.
func (s *engagementService) DeleteTask(ctx context.Context, taskID string, userID string) error {
	logger := s.GetLogger(ctx)

	task, err := s.getTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := s.engagementRepo.DeleteTask(ctx, taskID); err != nil {
		logger.Error("Failed to delete task", slog.String("error", err.Error()), slog.String("task_id", taskID))
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}

	if _, err := s.RefreshProgress(ctx, task.EngagementID, userID); err != nil {
		return err
	}
	logger.Info("Task deleted", slog.String("task_id", taskID))
	return nil
}

// RefreshProgress recomputes the engagement's completion percentage as
// 100 * done / total, 0 when the engagement has no tasks.
func (s *engagementService) RefreshProgress(ctx context.Context, engagementID string, userID string) (int, error) {
	logger := s.GetLogger(ctx)

	total, done, err := s.engagementRepo.CountTasks(ctx, engagementID)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks for engagement %s: %w", engagementID, err)
	}

	percentage := 0
	if total > 0 {
		percentage = 100 * done / total
	}

	if err := s.engagementRepo.UpdateEngagementProgress(ctx, engagementID, percentage, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to update engagement progress", slog.String("error", err.Error()), slog.String("engagement_id", engagementID))
		return 0, fmt.Errorf("failed to update progress for engagement %s: %w", engagementID, err)
	}

	logger.Debug("Engagement progress refreshed",
		slog.String("engagement_id", engagementID),
		slog.Int("total", total),
		slog.Int("done", done),
		slog.Int("percentage", percentage))
	return percentage, nil
}
