package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/core/services"
)

// MockInvoiceRepository is a mock type for the InvoiceRepositoryFacade interface
type MockInvoiceRepository struct {
	mock.Mock
}

// Ensure MockInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, limit int, nextToken *string, clientID *string, status *domain.InvoiceStatus) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, limit, nextToken, clientID, status)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invoices, token, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ReplaceLines(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	args := m.Called(ctx, invoiceID, status, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SavePostedEntryForInvoice(ctx context.Context, invoiceID string, entry domain.JournalEntry, items []domain.JournalItem) error {
	args := m.Called(ctx, invoiceID, entry, items)
	return args.Error(0)
}

// MockClientRepository is a mock type for the ClientRepositoryFacade interface
type MockClientRepository struct {
	mock.Mock
}

// Ensure MockClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PostingServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo *MockInvoiceRepository
	mockAccountRepo *MockAccountRepository
	mockClientRepo  *MockClientRepository
	service         portssvc.PostingSvcFacade
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewPostingService(
		suite.mockInvoiceRepo,
		suite.mockAccountRepo,
		suite.mockClientRepo,
		services.LedgerAccounts{Receivable: "1200", Revenue: "4000", TaxPayable: "2100"},
	)
}

// sentInvoice builds a SENT invoice not yet posted to the ledger.
func sentInvoice(subtotal, tax int64) *domain.Invoice {
	return &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		ClientID:      uuid.NewString(),
		InvoiceNumber: "INV-101",
		IssueDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:      decimal.NewFromInt(subtotal),
		TaxAmount:     decimal.NewFromInt(tax),
		Total:         decimal.NewFromInt(subtotal + tax),
		Status:        domain.InvoiceSent,
	}
}

func (suite *PostingServiceTestSuite) expectLedgerAccounts() {
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1200", "4000", "2100"}).
		Return(activeAccounts("1200", "4000", "2100"), nil).Once()
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostInvoice_TaxedInvoice() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoice := sentInvoice(100, 15)
	client := &domain.Client{ClientID: invoice.ClientID, Name: "Acme Widgets LLC"}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.expectLedgerAccounts()
	suite.mockClientRepo.On("FindClientByID", ctx, invoice.ClientID).Return(client, nil).Once()
	suite.mockInvoiceRepo.On("SavePostedEntryForInvoice", ctx, invoice.InvoiceID,
		mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalItem")).Return(nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Posted, entry.Status)
	suite.Require().NotNil(entry.PostedAt)
	suite.Equal(invoice.IssueDate, entry.Date)
	suite.Equal("Invoice #INV-101 - Acme Widgets LLC", entry.Description)
	suite.Equal(invoice.InvoiceNumber, entry.Reference)
	suite.Require().NotNil(entry.ClientID)
	suite.Equal(invoice.ClientID, *entry.ClientID)

	suite.Require().Len(entry.Items, 3)
	suite.Equal("1200", entry.Items[0].AccountCode)
	suite.True(entry.Items[0].Debit.Equal(decimal.NewFromInt(115)))
	suite.Equal("4000", entry.Items[1].AccountCode)
	suite.True(entry.Items[1].Credit.Equal(decimal.NewFromInt(100)))
	suite.Equal("2100", entry.Items[2].AccountCode)
	suite.True(entry.Items[2].Credit.Equal(decimal.NewFromInt(15)))
	// Line numbers pin the receivable/revenue/tax order for later reads.
	suite.Equal(1, entry.Items[0].LineNo)
	suite.Equal(2, entry.Items[1].LineNo)
	suite.Equal(3, entry.Items[2].LineNo)
	suite.True(entry.IsBalanced())

	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostInvoice_ZeroTaxOmitsTaxLine() {
	ctx := context.Background()
	invoice := sentInvoice(220, 0)
	client := &domain.Client{ClientID: invoice.ClientID, Name: "Acme Widgets LLC"}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.expectLedgerAccounts()
	suite.mockClientRepo.On("FindClientByID", ctx, invoice.ClientID).Return(client, nil).Once()
	suite.mockInvoiceRepo.On("SavePostedEntryForInvoice", ctx, invoice.InvoiceID,
		mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalItem")).Return(nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Require().Len(entry.Items, 2)
	suite.True(entry.Items[0].Debit.Equal(decimal.NewFromInt(220)))
	suite.True(entry.Items[1].Credit.Equal(decimal.NewFromInt(220)))
	suite.True(entry.IsBalanced())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostInvoice_SkipsDraftInvoice() {
	ctx := context.Background()
	invoice := sentInvoice(100, 0)
	invoice.Status = domain.InvoiceDraft

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedEntryForInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostInvoice_SkipsAlreadyPosted() {
	ctx := context.Background()
	invoice := sentInvoice(100, 15)
	existingEntryID := uuid.NewString()
	invoice.JournalEntryID = &existingEntryID

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedEntryForInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostInvoice_MissingMappedAccount() {
	ctx := context.Background()
	invoice := sentInvoice(100, 15)

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	// The tax payable account is missing from the chart.
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1200", "4000", "2100"}).
		Return(activeAccounts("1200", "4000"), nil).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrLedgerMapping)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SavePostedEntryForInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostInvoice_ConcurrentPostIsNoOp() {
	ctx := context.Background()
	invoice := sentInvoice(100, 15)
	client := &domain.Client{ClientID: invoice.ClientID, Name: "Acme Widgets LLC"}

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoice.InvoiceID).Return(invoice, nil).Once()
	suite.expectLedgerAccounts()
	suite.mockClientRepo.On("FindClientByID", ctx, invoice.ClientID).Return(client, nil).Once()
	// Another caller won the race inside the repository transaction.
	suite.mockInvoiceRepo.On("SavePostedEntryForInvoice", ctx, invoice.InvoiceID,
		mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalItem")).
		Return(apperrors.ErrConflict).Once()

	entry, err := suite.service.PostInvoice(ctx, invoice.InvoiceID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.PostInvoice(ctx, invoiceID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
