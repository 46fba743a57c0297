package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/core/services"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

// Ensure MockAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.Asset,
		Description: "Primary operating bank accounts",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(req.Code, created.Code)
	suite.Equal(req.Name, created.Name)
	suite.Equal(req.AccountType, created.AccountType)
	suite.True(created.IsActive)
	suite.Equal(creatorUserID, created.CreatedBy)
	suite.Equal(creatorUserID, created.LastUpdatedBy)
	suite.WithinDuration(time.Now(), created.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.Asset,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash on Hand",
		AccountType: domain.AccountType("BANANA"),
	}

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentCode := "1000"
	req := dto.CreateAccountRequest{
		Code:        "4100",
		Name:        "Consulting Income",
		AccountType: domain.Income,
		ParentCode:  &parentCode,
	}
	parent := &domain.Account{Code: parentCode, Name: "Cash on Hand", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(parent, nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentCode := "9000"
	req := dto.CreateAccountRequest{
		Code:        "9100",
		Name:        "Misc Expense",
		AccountType: domain.Expense,
		ParentCode:  &parentCode,
	}

	suite.mockRepo.On("FindAccountByCode", ctx, parentCode).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SelfParent() {
	ctx := context.Background()
	code := "1000"
	req := dto.CreateAccountRequest{
		Code:        code,
		Name:        "Cash on Hand",
		AccountType: domain.Asset,
		ParentCode:  &code,
	}

	created, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_FreshDatabase() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Times(11)

	created, err := suite.service.SeedStandardChart(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(11, created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_AlreadySeeded() {
	ctx := context.Background()

	// Every code already exists; the seed skips them all.
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Times(11)

	created, err := suite.service.SeedStandardChart(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(0, created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_PartiallySeeded() {
	ctx := context.Background()

	// The first three codes exist, the rest get created.
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Times(3)
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Times(8)

	created, err := suite.service.SeedStandardChart(ctx, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(8, created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedStandardChart_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(expectedErr).Once()

	created, err := suite.service.SeedStandardChart(ctx, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Equal(0, created)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByCode(ctx, "1000")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_FilterByType() {
	ctx := context.Background()
	accountType := domain.Expense
	expected := []domain.Account{
		{Code: "5000", Name: "Rent Expense", AccountType: domain.Expense, IsActive: true},
		{Code: "5100", Name: "Salaries & Wages", AccountType: domain.Expense, IsActive: true},
	}

	suite.mockRepo.On("ListAccounts", ctx, &accountType).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, &accountType)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_InvalidType() {
	ctx := context.Background()
	accountType := domain.AccountType("BANANA")

	accounts, err := suite.service.ListAccounts(ctx, &accountType)

	suite.Require().Error(err)
	suite.Nil(accounts)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.Account{Code: "1000", Name: "Cash on Hand", AccountType: domain.Asset, Description: "Primary operating bank accounts", IsActive: true}
	newName := "Cash and Equivalents"
	newDescription := "All operating bank accounts"
	req := dto.UpdateAccountRequest{Name: &newName, Description: &newDescription}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "1000", req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(newName, updated.Name)
	suite.Equal(newDescription, updated.Description)
	suite.Equal(domain.Asset, updated.AccountType)
	suite.Equal(userID, updated.LastUpdatedBy)
	suite.WithinDuration(time.Now(), updated.LastUpdatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFields() {
	ctx := context.Background()
	existing := &domain.Account{Code: "1000", Name: "Cash on Hand", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, "1000", dto.UpdateAccountRequest{}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal("Cash on Hand", updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	newName := "Cash and Equivalents"

	suite.mockRepo.On("FindAccountByCode", ctx, "9000").Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateAccount(ctx, "9000", dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	account := &domain.Account{Code: "1000", Name: "Cash on Hand", AccountType: domain.Asset, IsActive: true}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(account, nil).Once()
	suite.mockRepo.On("DeactivateAccount", ctx, "1000", userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, "1000", userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Referenced() {
	ctx := context.Background()

	suite.mockRepo.On("DeleteAccount", ctx, "4000").Return(apperrors.ErrReferenced).Once()

	err := suite.service.DeleteAccount(ctx, "4000")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferenced)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
