package repositories

// RepositoryProvider bundles the concrete repositories handed to the
// service container.
type RepositoryProvider struct {
	AccountRepo   AccountDirectory
	JournalRepo   JournalRepository
	ReportingRepo ReportingRepository
}
