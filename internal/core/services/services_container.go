package services

import (
	portsrepo "github.com/ledgerline/practice_backend/internal/core/ports/repositories"
	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Client = NewClientService(repos.ClientRepo)
	container.Engagement = NewEngagementService(repos.EngagementRepo, repos.ClientRepo)
	container.Document = NewDocumentService(repos.DocumentRepo)
	container.Vendor = NewVendorService(repos.VendorRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// Posting resolves its ledger account codes from configuration so the
	// chart can be remapped per deployment.
	container.Posting = NewPostingService(repos.InvoiceRepo, repos.AccountRepo, repos.ClientRepo, LedgerAccounts{
		Receivable: cfg.LedgerAccounts.Receivable,
		Revenue:    cfg.LedgerAccounts.Revenue,
		TaxPayable: cfg.LedgerAccounts.TaxPayable,
	})
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ClientRepo, container.Posting)

	return container
}
