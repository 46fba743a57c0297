package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
)

const documentColumns = `document_id, client_id, engagement_id, uploaded_by, storage_key, description, category, is_verified, uploaded_at`

const pbcColumns = `request_id, engagement_id, title, description, status, attachment_key, requested_at`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.ClientDocument, error) {
	var m models.ClientDocument
	err := row.Scan(
		&m.DocumentID,
		&m.ClientID,
		&m.EngagementID,
		&m.UploadedBy,
		&m.StorageKey,
		&m.Description,
		&m.Category,
		&m.IsVerified,
		&m.UploadedAt,
	)
	return m, err
}

func scanPBCRequest(row pgx.Row) (models.PBCRequest, error) {
	var m models.PBCRequest
	err := row.Scan(
		&m.RequestID,
		&m.EngagementID,
		&m.Title,
		&m.Description,
		&m.Status,
		&m.AttachmentKey,
		&m.RequestedAt,
	)
	return m, err
}

// SaveDocument persists document metadata.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.ClientDocument) error {
	m := mapping.ToModelClientDocument(doc)
	query := `
		INSERT INTO client_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.ClientID,
		m.EngagementID,
		m.UploadedBy,
		m.StorageKey,
		m.Description,
		m.Category,
		m.IsVerified,
		m.UploadedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

// ListDocumentsByClient retrieves a client's document metadata, newest first.
func (r *PgxDocumentRepository) ListDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM client_documents WHERE client_id = $1 ORDER BY uploaded_at DESC;`

	rows, err := r.Pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents", err)
	}
	defer rows.Close()

	modelDocs := []models.ClientDocument{}
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", scanErr)
		}
		modelDocs = append(modelDocs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return mapping.ToDomainClientDocumentSlice(modelDocs), nil
}

// MarkDocumentVerified flags a document as verified by staff.
func (r *PgxDocumentRepository) MarkDocumentVerified(ctx context.Context, documentID string) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE client_documents SET is_verified = TRUE WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to verify document "+documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePBCRequest persists a new PBC request.
func (r *PgxDocumentRepository) SavePBCRequest(ctx context.Context, req domain.PBCRequest) error {
	m := mapping.ToModelPBCRequest(req)
	query := `
		INSERT INTO pbc_requests (` + pbcColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID,
		m.EngagementID,
		m.Title,
		m.Description,
		m.Status,
		m.AttachmentKey,
		m.RequestedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert PBC request "+m.RequestID, err)
	}
	return nil
}

// ListPBCRequestsByEngagement retrieves an engagement's PBC requests.
func (r *PgxDocumentRepository) ListPBCRequestsByEngagement(ctx context.Context, engagementID string) ([]domain.PBCRequest, error) {
	query := `SELECT ` + pbcColumns + ` FROM pbc_requests WHERE engagement_id = $1 ORDER BY requested_at;`

	rows, err := r.Pool.Query(ctx, query, engagementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query PBC requests", err)
	}
	defer rows.Close()

	modelReqs := []models.PBCRequest{}
	for rows.Next() {
		m, scanErr := scanPBCRequest(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan PBC request row", scanErr)
		}
		modelReqs = append(modelReqs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating PBC request rows", err)
	}
	return mapping.ToDomainPBCRequestSlice(modelReqs), nil
}

// UpdatePBCRequestStatus transitions a PBC request. attachment_key is only
// overwritten when a new key is supplied.
func (r *PgxDocumentRepository) UpdatePBCRequestStatus(ctx context.Context, requestID string, status domain.PBCStatus, attachmentKey *string) error {
	query := `
		UPDATE pbc_requests
		SET status = $2, attachment_key = COALESCE($3, attachment_key)
		WHERE request_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, requestID, string(status), attachmentKey)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update PBC request %s", requestID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
