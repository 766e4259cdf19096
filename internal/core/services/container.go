package services

import (
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/omnibooks/ledger-engine/internal/core/ports/services"
)

// ServicesContainer bundles the core facades handed to calling modules.
type ServicesContainer struct {
	Journal   portssvc.JournalSvc
	Reporting portssvc.ReportingSvc
}

// NewServicesContainer wires the core services over the given repositories.
func NewServicesContainer(repos portsrepo.RepositoryProvider, journalOptions ...JournalServiceOption) *ServicesContainer {
	return &ServicesContainer{
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo, journalOptions...),
		Reporting: NewReportingService(repos.ReportingRepo),
	}
}
