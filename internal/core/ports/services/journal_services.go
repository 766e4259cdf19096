package services

import (
	"context"

	"github.com/omnibooks/ledger-engine/internal/core/domain"
	"github.com/omnibooks/ledger-engine/internal/dto"
)

// JournalSvc is the posting facade every money-moving module routes
// through: sale completion, purchase receipt, payment capture, commission
// settlement, manual entry and reversal flows.
type JournalSvc interface {
	// PostJournal validates the proposed journal and commits it together
	// with one ledger row per entry line as a single atomic unit. It
	// returns the persisted journal (with generated id and computed
	// totals) for the caller to store as its audit reference.
	PostJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.Journal, error)

	// GetJournalByID retrieves a committed journal with its entry lines.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ReverseJournal posts an opposite journal referencing the original
	// and marks the original REVERSED, atomically.
	ReverseJournal(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListRowsByAccount retrieves a page of an account's ledger rows.
	ListRowsByAccount(ctx context.Context, accountID string, params dto.ListRowsParams) (*dto.ListRowsResponse, error)
}
