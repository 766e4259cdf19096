package pgsql

import (
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgsql repositories over one pool.
func NewRepositoryProvider(pool PgxPool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	journalRepo := newPgxJournalRepository(pool, accountRepo)
	reportingRepo := newReportingRepository(pool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
	}
}
