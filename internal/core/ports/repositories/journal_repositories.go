package repositories

import (
	"context"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
)

// JournalReader defines read operations for committed journal data.
type JournalReader interface {
	// FindJournalByID retrieves a journal header by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindRowsByJournalID retrieves the ledger rows of one journal in
	// commit order.
	FindRowsByJournalID(ctx context.Context, journalID string) ([]domain.LedgerRow, error)

	// ListRowsByAccountID retrieves a page of an account's ledger rows,
	// newest first, using token-based pagination. It returns the rows, a
	// token for the next page (nil on the last page), and an error.
	ListRowsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)
}

// JournalWriter defines the single write path into the ledger.
type JournalWriter interface {
	// SaveJournal persists the journal and exactly one ledger row per entry
	// line as a single atomic unit. The store resolves each row's running
	// balance under the per-account lock and fills rows[i].Balance; no row
	// is visible without its journal, and vice versa.
	//
	// When journal.RefKind is REVERSAL and OriginalJournalID is set, the
	// original journal is marked REVERSED and linked to the reversal inside
	// the same unit of work.
	//
	// Returns apperrors.ErrConcurrencyConflict when the posting lost a
	// per-account race and should be retried.
	SaveJournal(ctx context.Context, journal domain.Journal, rows []domain.LedgerRow) error
}

// JournalRepository combines the journal read and write ports.
type JournalRepository interface {
	JournalReader
	JournalWriter
}
