package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
)

const clientColumns = `client_id, name, tax_id_number, entity_type, industry, assigned_partner, fiscal_year_end, risk_rating, billing_address, primary_currency, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.TaxIDNumber,
		&m.EntityType,
		&m.Industry,
		&m.AssignedPartner,
		&m.FiscalYearEnd,
		&m.RiskRating,
		&m.BillingAddress,
		&m.PrimaryCurrency,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveClient persists a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.TaxIDNumber,
		m.EntityType,
		m.Industry,
		m.AssignedPartner,
		m.FiscalYearEnd,
		m.RiskRating,
		m.BillingAddress,
		m.PrimaryCurrency,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("tax ID %s: %w", m.TaxIDNumber, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert client "+m.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}

	client := mapping.ToDomainClient(m)
	return &client, nil
}

// ListClients retrieves all active clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE is_active = TRUE ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients", err)
	}
	defer rows.Close()

	modelClients := []models.Client{}
	for rows.Next() {
		m, scanErr := scanClient(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan client row", scanErr)
		}
		modelClients = append(modelClients, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating client rows", err)
	}
	return mapping.ToDomainClientSlice(modelClients), nil
}

// UpdateClient updates an existing client's details.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
		UPDATE clients
		SET name = $2, entity_type = $3, industry = $4, assigned_partner = $5,
		    fiscal_year_end = $6, risk_rating = $7, billing_address = $8,
		    primary_currency = $9, is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.EntityType,
		m.Industry,
		m.AssignedPartner,
		m.FiscalYearEnd,
		m.RiskRating,
		m.BillingAddress,
		m.PrimaryCurrency,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update client "+m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
