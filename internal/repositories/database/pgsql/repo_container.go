package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	engagementRepo := newPgxEngagementRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)
	vendorRepo := newPgxVendorRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		JournalRepo:    journalRepo,
		InvoiceRepo:    invoiceRepo,
		ReportingRepo:  reportingRepo,
		ClientRepo:     clientRepo,
		EngagementRepo: engagementRepo,
		DocumentRepo:   documentRepo,
		VendorRepo:     vendorRepo,
	}
}
