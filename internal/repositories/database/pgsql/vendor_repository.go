package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerline/practice_backend/internal/apperrors"
	"github.com/ledgerline/practice_backend/internal/core/domain"
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	"github.com/ledgerline/practice_backend/internal/models"
	"github.com/ledgerline/practice_backend/internal/utils/mapping"
)

const vendorColumns = `vendor_id, name, email, tax_id, payment_terms, currency, created_at, created_by, last_updated_at, last_updated_by`

const billColumns = `bill_id, vendor_id, bill_number, issue_date, due_date, total_amount, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxVendorRepository struct {
	BaseRepository
}

// newPgxVendorRepository creates a new repository for vendor and bill data.
func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

func scanVendor(row pgx.Row) (models.Vendor, error) {
	var m models.Vendor
	err := row.Scan(
		&m.VendorID,
		&m.Name,
		&m.Email,
		&m.TaxID,
		&m.PaymentTerms,
		&m.Currency,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanBill(row pgx.Row) (models.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.VendorID,
		&m.BillNumber,
		&m.IssueDate,
		&m.DueDate,
		&m.TotalAmount,
		&m.Status,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveVendor persists a new vendor.
func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VendorID,
		m.Name,
		m.Email,
		m.TaxID,
		m.PaymentTerms,
		m.Currency,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("vendor tax ID %s: %w", m.TaxID, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert vendor "+m.VendorID, err)
	}
	return nil
}

// ListVendors retrieves all vendors ordered by name.
func (r *PgxVendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query vendors", err)
	}
	defer rows.Close()

	modelVendors := []models.Vendor{}
	for rows.Next() {
		m, scanErr := scanVendor(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan vendor row", scanErr)
		}
		modelVendors = append(modelVendors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating vendor rows", err)
	}
	return mapping.ToDomainVendorSlice(modelVendors), nil
}

// SaveBill persists a new bill.
func (r *PgxVendorRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BillID,
		m.VendorID,
		m.BillNumber,
		m.IssueDate,
		m.DueDate,
		m.TotalAmount,
		m.Status,
		m.JournalEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("bill number %s: %w", m.BillNumber, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert bill "+m.BillID, err)
	}
	return nil
}

// FindBillByID retrieves a bill by ID.
func (r *PgxVendorRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`

	m, err := scanBill(r.Pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}

	bill := mapping.ToDomainBill(m)
	return &bill, nil
}

// ListBillsByVendor retrieves a vendor's bills ordered by due date.
func (r *PgxVendorRepository) ListBillsByVendor(ctx context.Context, vendorID string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE vendor_id = $1 ORDER BY due_date;`

	rows, err := r.Pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	modelBills := []models.Bill{}
	for rows.Next() {
		m, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill row", scanErr)
		}
		modelBills = append(modelBills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill rows", err)
	}
	return mapping.ToDomainBillSlice(modelBills), nil
}

// UpdateBillStatus transitions a bill's status.
func (r *PgxVendorRepository) UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, userID string, now time.Time) error {
	query := `
		UPDATE bills
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bill_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, billID, string(status), now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for bill "+billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
