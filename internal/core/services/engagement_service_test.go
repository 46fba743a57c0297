package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/core/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// MockEngagementRepository is a mock type for the EngagementRepositoryFacade interface
type MockEngagementRepository struct {
	mock.Mock
}

// Ensure MockEngagementRepository implements portsrepo.EngagementRepositoryFacade
var _ portsrepo.EngagementRepositoryFacade = (*MockEngagementRepository)(nil)

func (m *MockEngagementRepository) SaveEngagement(ctx context.Context, engagement domain.Engagement) error {
	args := m.Called(ctx, engagement)
	return args.Error(0)
}

func (m *MockEngagementRepository) FindEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error) {
	args := m.Called(ctx, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Engagement), args.Error(1)
}

func (m *MockEngagementRepository) ListEngagementsByClient(ctx context.Context, clientID string) ([]domain.Engagement, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Engagement), args.Error(1)
}

func (m *MockEngagementRepository) UpdateEngagement(ctx context.Context, engagement domain.Engagement) error {
	args := m.Called(ctx, engagement)
	return args.Error(0)
}

func (m *MockEngagementRepository) UpdateEngagementProgress(ctx context.Context, engagementID string, percentage int, userID string, now time.Time) error {
	args := m.Called(ctx, engagementID, percentage, userID, now)
	return args.Error(0)
}

func (m *MockEngagementRepository) SaveTask(ctx context.Context, task domain.EngagementTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockEngagementRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.EngagementTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngagementTask), args.Error(1)
}

func (m *MockEngagementRepository) ListTasksByEngagement(ctx context.Context, engagementID string) ([]domain.EngagementTask, error) {
	args := m.Called(ctx, engagementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EngagementTask), args.Error(1)
}

func (m *MockEngagementRepository) UpdateTask(ctx context.Context, task domain.EngagementTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockEngagementRepository) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockEngagementRepository) CountTasks(ctx context.Context, engagementID string) (int, int, error) {
	args := m.Called(ctx, engagementID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// --- Test Suite Setup ---

type EngagementServiceTestSuite struct {
	suite.Suite
	mockEngagementRepo *MockEngagementRepository
	mockClientRepo     *MockClientRepository
	service            portssvc.EngagementSvcFacade
}

func (suite *EngagementServiceTestSuite) SetupTest() {
	suite.mockEngagementRepo = new(MockEngagementRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewEngagementService(suite.mockEngagementRepo, suite.mockClientRepo)
}

func (suite *EngagementServiceTestSuite) expectProgressRefresh(engagementID string, total, done, percentage int) {
	suite.mockEngagementRepo.On("CountTasks", mock.Anything, engagementID).Return(total, done, nil).Once()
	suite.mockEngagementRepo.On("UpdateEngagementProgress", mock.Anything, engagementID, percentage,
		mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
}

// --- Test Cases ---

func (suite *EngagementServiceTestSuite) TestCreateEngagement_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.CreateEngagementRequest{
		ClientID:       clientID,
		Name:           "FY2026 Statutory Audit",
		EngagementType: domain.EngagementAudit,
		Methodology:    "IFRS",
		Year:           2026,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).
		Return(&domain.Client{ClientID: clientID, Name: "Acme Widgets LLC", IsActive: true}, nil).Once()
	suite.mockEngagementRepo.On("SaveEngagement", ctx, mock.AnythingOfType("domain.Engagement")).Return(nil).Once()

	engagement, err := suite.service.CreateEngagement(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(engagement)
	suite.NotEmpty(engagement.EngagementID)
	suite.Equal(domain.EngagementPlanning, engagement.Status)
	suite.Equal(0, engagement.CompletionPercentage)
	suite.Equal(creatorUserID, engagement.CreatedBy)
	suite.WithinDuration(time.Now(), engagement.CreatedAt, time.Second)

	suite.mockEngagementRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestCreateEngagement_UnknownClient() {
	ctx := context.Background()
	clientID := uuid.NewString()
	req := dto.CreateEngagementRequest{
		ClientID:       clientID,
		Name:           "FY2026 Statutory Audit",
		EngagementType: domain.EngagementAudit,
		Year:           2026,
	}

	suite.mockClientRepo.On("FindClientByID", ctx, clientID).Return(nil, apperrors.ErrNotFound).Once()

	engagement, err := suite.service.CreateEngagement(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(engagement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "SaveEngagement", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestUpdateEngagement_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	engagementID := uuid.NewString()
	existing := &domain.Engagement{
		EngagementID:   engagementID,
		Name:           "FY2026 Statutory Audit",
		EngagementType: domain.EngagementAudit,
		Status:         domain.EngagementPlanning,
		Year:           2026,
	}
	newStatus := domain.EngagementFieldwork
	lead := uuid.NewString()
	req := dto.UpdateEngagementRequest{Status: &newStatus, LeadAuditor: &lead}

	suite.mockEngagementRepo.On("FindEngagementByID", ctx, engagementID).Return(existing, nil).Once()
	suite.mockEngagementRepo.On("UpdateEngagement", ctx, mock.AnythingOfType("domain.Engagement")).Return(nil).Once()

	updated, err := suite.service.UpdateEngagement(ctx, engagementID, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.EngagementFieldwork, updated.Status)
	suite.Require().NotNil(updated.LeadAuditor)
	suite.Equal(lead, *updated.LeadAuditor)
	suite.Equal(userID, updated.LastUpdatedBy)
	suite.WithinDuration(time.Now(), updated.LastUpdatedAt, time.Second)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestUpdateEngagement_NoFields() {
	ctx := context.Background()
	engagementID := uuid.NewString()
	existing := &domain.Engagement{EngagementID: engagementID, Name: "FY2026 Statutory Audit", Status: domain.EngagementPlanning}

	suite.mockEngagementRepo.On("FindEngagementByID", ctx, engagementID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateEngagement(ctx, engagementID, dto.UpdateEngagementRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.EngagementPlanning, updated.Status)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "UpdateEngagement", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestUpdateEngagement_NotFound() {
	ctx := context.Background()
	engagementID := uuid.NewString()
	newName := "FY2027 Statutory Audit"

	suite.mockEngagementRepo.On("FindEngagementByID", ctx, engagementID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateEngagement(ctx, engagementID, dto.UpdateEngagementRequest{Name: &newName}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "UpdateEngagement", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestCreateTask_RefreshesProgress() {
	ctx := context.Background()
	engagementID := uuid.NewString()
	req := dto.CreateTaskRequest{
		EngagementID: engagementID,
		Title:        "Confirm bank balances",
	}

	suite.mockEngagementRepo.On("FindEngagementByID", ctx, engagementID).
		Return(&domain.Engagement{EngagementID: engagementID}, nil).Once()
	suite.mockEngagementRepo.On("SaveTask", ctx, mock.AnythingOfType("domain.EngagementTask")).Return(nil).Once()
	suite.expectProgressRefresh(engagementID, 1, 0, 0)

	task, err := suite.service.CreateTask(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(task)
	suite.Equal(domain.TaskPending, task.Status)
	suite.Nil(task.PreparedBy)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestSignOffPrepare_Success() {
	ctx := context.Background()
	taskID := uuid.NewString()
	engagementID := uuid.NewString()
	preparerID := uuid.NewString()
	task := &domain.EngagementTask{
		TaskID:       taskID,
		EngagementID: engagementID,
		Title:        "Confirm bank balances",
		Status:       domain.TaskInProgress,
	}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()
	suite.mockEngagementRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.EngagementTask")).Return(nil).Once()
	suite.expectProgressRefresh(engagementID, 3, 0, 0)

	updated, err := suite.service.SignOffPrepare(ctx, taskID, preparerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.TaskReview, updated.Status)
	suite.Require().NotNil(updated.PreparedBy)
	suite.Equal(preparerID, *updated.PreparedBy)
	suite.NotNil(updated.PreparedAt)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestSignOffReview_Success() {
	ctx := context.Background()
	taskID := uuid.NewString()
	engagementID := uuid.NewString()
	preparerID := uuid.NewString()
	reviewerID := uuid.NewString()
	preparedAt := time.Now().UTC().Add(-time.Hour)
	task := &domain.EngagementTask{
		TaskID:       taskID,
		EngagementID: engagementID,
		Status:       domain.TaskReview,
		PreparedBy:   &preparerID,
		PreparedAt:   &preparedAt,
	}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()
	suite.mockEngagementRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.EngagementTask")).Return(nil).Once()
	suite.expectProgressRefresh(engagementID, 3, 1, 33)

	updated, err := suite.service.SignOffReview(ctx, taskID, reviewerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(domain.TaskDone, updated.Status)
	suite.Require().NotNil(updated.ReviewedBy)
	suite.Equal(reviewerID, *updated.ReviewedBy)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestSignOffReview_ReviewerIsPreparer() {
	ctx := context.Background()
	taskID := uuid.NewString()
	preparerID := uuid.NewString()
	preparedAt := time.Now().UTC().Add(-time.Hour)
	task := &domain.EngagementTask{
		TaskID:       taskID,
		EngagementID: uuid.NewString(),
		Status:       domain.TaskReview,
		PreparedBy:   &preparerID,
		PreparedAt:   &preparedAt,
	}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()

	updated, err := suite.service.SignOffReview(ctx, taskID, preparerID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, domain.ErrReviewerIsPreparer)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "UpdateTask", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestSignOffReview_NotPrepared() {
	ctx := context.Background()
	taskID := uuid.NewString()
	task := &domain.EngagementTask{
		TaskID:       taskID,
		EngagementID: uuid.NewString(),
		Status:       domain.TaskInProgress,
	}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()

	updated, err := suite.service.SignOffReview(ctx, taskID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, domain.ErrNotPrepared)
	suite.mockEngagementRepo.AssertNotCalled(suite.T(), "UpdateTask", mock.Anything, mock.Anything)
}

func (suite *EngagementServiceTestSuite) TestUpdateTaskStatus_RefreshesProgress() {
	ctx := context.Background()
	taskID := uuid.NewString()
	engagementID := uuid.NewString()
	task := &domain.EngagementTask{
		TaskID:       taskID,
		EngagementID: engagementID,
		Status:       domain.TaskPending,
	}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()
	suite.mockEngagementRepo.On("UpdateTask", ctx, mock.AnythingOfType("domain.EngagementTask")).Return(nil).Once()
	suite.expectProgressRefresh(engagementID, 4, 2, 50)

	updated, err := suite.service.UpdateTaskStatus(ctx, taskID, domain.TaskInProgress, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.TaskInProgress, updated.Status)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestDeleteTask_RefreshesProgress() {
	ctx := context.Background()
	taskID := uuid.NewString()
	engagementID := uuid.NewString()
	task := &domain.EngagementTask{TaskID: taskID, EngagementID: engagementID, Status: domain.TaskDone}

	suite.mockEngagementRepo.On("FindTaskByID", ctx, taskID).Return(task, nil).Once()
	suite.mockEngagementRepo.On("DeleteTask", ctx, taskID).Return(nil).Once()
	suite.expectProgressRefresh(engagementID, 2, 1, 50)

	err := suite.service.DeleteTask(ctx, taskID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestRefreshProgress_Rounding() {
	ctx := context.Background()
	engagementID := uuid.NewString()
	userID := uuid.NewString()

	// 2 of 3 done truncates to 66, never rounds up.
	suite.expectProgressRefresh(engagementID, 3, 2, 66)

	percentage, err := suite.service.RefreshProgress(ctx, engagementID, userID)

	suite.Require().NoError(err)
	suite.Equal(66, percentage)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestRefreshProgress_NoTasks() {
	ctx := context.Background()
	engagementID := uuid.NewString()

	suite.expectProgressRefresh(engagementID, 0, 0, 0)

	percentage, err := suite.service.RefreshProgress(ctx, engagementID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(0, percentage)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

func (suite *EngagementServiceTestSuite) TestRefreshProgress_AllDone() {
	ctx := context.Background()
	engagementID := uuid.NewString()

	suite.expectProgressRefresh(engagementID, 5, 5, 100)

	percentage, err := suite.service.RefreshProgress(ctx, engagementID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(100, percentage)
	suite.mockEngagementRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestEngagementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EngagementServiceTestSuite))
}
