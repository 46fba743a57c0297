package services

import (
	"context"

	"github.com/ledgerline/practice_backend/internal/core/domain"
	"github.com/ledgerline/practice_backend/internal/dto"
)

// ClientSvcFacade defines client registry operations.
type ClientSvcFacade interface {
	// CreateClient registers a new client. Fails with apperrors.ErrDuplicate
	// when the tax ID is already registered.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// GetClientByID retrieves a client.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves all active clients.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// UpdateClient applies the non-nil fields of req to an existing client.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)
}

// EngagementSvcFacade defines engagement and task workflow operations.
// Every task mutation ends with an explicit progress recomputation on the
// parent engagement.
type EngagementSvcFacade interface {
	// CreateEngagement opens a new engagement for a client.
	CreateEngagement(ctx context.Context, req dto.CreateEngagementRequest, creatorUserID string) (*domain.Engagement, error)

	// GetEngagementByID retrieves an engagement.
	GetEngagementByID(ctx context.Context, engagementID string) (*domain.Engagement, error)

	// ListEngagementsByClient retrieves a client's engagements.
	ListEngagementsByClient(ctx context.Context, clientID string) ([]domain.Engagement, error)

	// UpdateEngagement applies the non-nil fields of req to an existing
	// engagement.
	UpdateEngagement(ctx context.Context, engagementID string, req dto.UpdateEngagementRequest, userID string) (*domain.Engagement, error)

	// CreateTask adds a task to an engagement.
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorUserID string) (*domain.EngagementTask, error)

	// ListTasks retrieves an engagement's tasks.
	ListTasks(ctx context.Context, engagementID string) ([]domain.EngagementTask, error)

	// UpdateTaskStatus moves a task through its workflow states.
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, userID string) (*domain.EngagementTask, error)

	// SignOffPrepare records first-level sign-off on a task.
	SignOffPrepare(ctx context.Context, taskID string, userID string) (*domain.EngagementTask, error)

	// SignOffReview records second-level sign-off on a task. The reviewer
	// must differ from the preparer.
	SignOffReview(ctx context.Context, taskID string, userID string) (*domain.EngagementTask, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, taskID string, userID string) error

	// RefreshProgress recomputes the denormalized completion percentage of an
	// engagement from its task states.
	RefreshProgress(ctx context.Context, engagementID string, userID string) (int, error)
}

// DocumentSvcFacade defines portal document metadata and PBC operations.
type DocumentSvcFacade interface {
	// RecordDocument stores metadata for a file already placed in external
	// storage.
	RecordDocument(ctx context.Context, req dto.RecordDocumentRequest, uploaderUserID string) (*domain.ClientDocument, error)

	// ListDocumentsByClient retrieves a client's document metadata.
	ListDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error)

	// VerifyDocument flags a document as verified by staff.
	VerifyDocument(ctx context.Context, documentID string) error

	// CreatePBCRequest raises a new evidence request on an engagement.
	CreatePBCRequest(ctx context.Context, req dto.CreatePBCRequest) (*domain.PBCRequest, error)

	// ListPBCRequests retrieves an engagement's PBC requests.
	ListPBCRequests(ctx context.Context, engagementID string) ([]domain.PBCRequest, error)

	// SubmitPBCRequest records the client's submission against a request.
	SubmitPBCRequest(ctx context.Context, requestID string, attachmentKey string) error

	// ResolvePBCRequest accepts or rejects a submitted request.
	ResolvePBCRequest(ctx context.Context, requestID string, accepted bool) error
}

// VendorSvcFacade defines the accounts-payable stub operations. Bills are
// tracked but not auto-posted; no posting service exists for them.
type VendorSvcFacade interface {
	// CreateVendor registers a new vendor.
	CreateVendor(ctx context.Context, req dto.CreateVendorRequest, creatorUserID string) (*domain.Vendor, error)

	// ListVendors retrieves all vendors.
	ListVendors(ctx context.Context) ([]domain.Vendor, error)

	// CreateBill records a vendor bill.
	CreateBill(ctx context.Context, req dto.CreateBillRequest, creatorUserID string) (*domain.Bill, error)

	// ListBillsByVendor retrieves a vendor's bills.
	ListBillsByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error)
}
