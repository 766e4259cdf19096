package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omnibooks/ledger-engine/internal/apperrors"
	"github.com/omnibooks/ledger-engine/internal/core/domain"
	portsrepo "github.com/omnibooks/ledger-engine/internal/core/ports/repositories"
	portssvc "github.com/omnibooks/ledger-engine/internal/core/ports/services"
	"github.com/omnibooks/ledger-engine/internal/dto"
	"github.com/omnibooks/ledger-engine/internal/logging"
)

const (
	defaultMaxPostAttempts = 3
	defaultRetryBackoff    = 25 * time.Millisecond
	defaultRowPageLimit    = 20
)

// journalService is the posting engine: the single choke point every
// money-moving module routes through. It validates, computes totals, and
// commits one journal plus N ledger rows as an atomic unit, retrying
// per-account concurrency conflicts with bounded backoff.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountDir  portsrepo.AccountDirectory
	checker     *JournalValidator
	structCheck *validator.Validate

	maxPostAttempts int
	retryBackoff    time.Duration
}

// JournalServiceOption configures the journal service.
type JournalServiceOption func(*journalService)

// WithPostRetry bounds the internal retry loop for concurrency conflicts.
func WithPostRetry(attempts int, backoff time.Duration) JournalServiceOption {
	return func(s *journalService) {
		if attempts > 0 {
			s.maxPostAttempts = attempts
		}
		if backoff > 0 {
			s.retryBackoff = backoff
		}
	}
}

// NewJournalService creates the posting service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountDir portsrepo.AccountDirectory, options ...JournalServiceOption) portssvc.JournalSvc {
	svc := &journalService{
		journalRepo:     journalRepo,
		accountDir:      accountDir,
		checker:         NewJournalValidator(),
		structCheck:     validator.New(),
		maxPostAttempts: defaultMaxPostAttempts,
		retryBackoff:    defaultRetryBackoff,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvc = (*journalService)(nil)

// PostJournal implements portssvc.JournalSvc.
func (s *journalService) PostJournal(ctx context.Context, req dto.PostJournalRequest) (*domain.Journal, error) {
	logger := logging.FromContext(ctx)

	if err := s.structCheck.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !req.RefKind.Valid() {
		return nil, fmt.Errorf("%w: unknown reference kind %q", apperrors.ErrValidation, req.RefKind)
	}

	entries := make([]domain.EntryLine, len(req.Entries))
	for i, line := range req.Entries {
		entries[i] = domain.EntryLine{
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			PartyType: line.PartyType,
			PartyID:   line.PartyID,
		}
	}

	accounts, err := s.fetchAccounts(ctx, entries)
	if err != nil {
		return nil, err
	}
	if err := s.checker.Validate(entries, accounts); err != nil {
		return nil, err
	}

	totalDebit := decimal.Zero
	for _, line := range entries {
		totalDebit = totalDebit.Add(line.Debit)
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		JournalDate: req.Date,
		Narration:   req.Narration,
		RefKind:     req.RefKind,
		RefID:       req.RefID,
		BranchID:    req.BranchID,
		Entries:     entries,
		TotalDebit:  totalDebit,
		TotalCredit: totalDebit, // validated equal
		Status:      domain.Posted,
		CreatedAt:   now,
	}

	if err := s.saveWithRetry(ctx, logger, journal, s.buildRows(journal)); err != nil {
		logger.Error("Failed to post journal",
			slog.String("ref_kind", string(journal.RefKind)),
			slog.String("ref_id", journal.RefID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("ref_kind", string(journal.RefKind)),
		slog.String("ref_id", journal.RefID),
		slog.Int("entries", len(journal.Entries)))
	return &journal, nil
}

// fetchAccounts loads the directory snapshot for every account the entries
// reference. Missing accounts are left absent; the validator reports them.
func (s *journalService) fetchAccounts(ctx context.Context, entries []domain.EntryLine) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, line := range entries {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}

	accounts, err := s.accountDir.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// buildRows stages one ledger row per entry line. Balances are left zero;
// the store resolves them under the per-account lock at commit time.
func (s *journalService) buildRows(journal domain.Journal) []domain.LedgerRow {
	rows := make([]domain.LedgerRow, len(journal.Entries))
	for i, line := range journal.Entries {
		rows[i] = domain.LedgerRow{
			RowID:             uuid.NewString(),
			JournalID:         journal.JournalID,
			AccountID:         line.AccountID,
			Debit:             line.Debit,
			Credit:            line.Credit,
			RefKind:           journal.RefKind,
			RefID:             journal.RefID,
			RelatedEntityType: line.PartyType,
			RelatedEntityID:   line.PartyID,
			Narration:         journal.Narration,
			RowDate:           journal.JournalDate,
			CreatedAt:         journal.CreatedAt,
		}
	}
	return rows
}

// saveWithRetry commits the posting unit, retrying concurrency conflicts
// with linear backoff. Only conflicts are retried; validation and
// persistence failures propagate unchanged.
func (s *journalService) saveWithRetry(ctx context.Context, logger *slog.Logger, journal domain.Journal, rows []domain.LedgerRow) error {
	for attempt := 1; ; attempt++ {
		err := s.journalRepo.SaveJournal(ctx, journal, rows)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrConcurrencyConflict) || attempt >= s.maxPostAttempts {
			return err
		}
		logger.Warn("Posting conflict, retrying",
			slog.String("journal_id", journal.JournalID),
			slog.Int("attempt", attempt))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryBackoff * time.Duration(attempt)):
		}
	}
}

// GetJournalByID implements portssvc.JournalSvc.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	rows, err := s.journalRepo.FindRowsByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows for journal %s: %w", journalID, err)
	}

	journal.Entries = make([]domain.EntryLine, len(rows))
	for i, row := range rows {
		journal.Entries[i] = domain.EntryLine{
			AccountID: row.AccountID,
			Debit:     row.Debit,
			Credit:    row.Credit,
			PartyType: row.RelatedEntityType,
			PartyID:   row.RelatedEntityID,
		}
	}
	return journal, nil
}

// ReverseJournal implements portssvc.JournalSvc. The reversal is a first
// class linked posting: it stores the original journal id, and the original
// is marked REVERSED in the same unit of work that commits the reversal.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	logger := logging.FromContext(ctx)

	original, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journal %s for reversal: %w", journalID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: journal %s status is %s, expected POSTED", apperrors.ErrConflict, journalID, original.Status)
	}
	if original.OriginalJournalID != nil {
		return nil, fmt.Errorf("%w: journal %s is itself a reversal", apperrors.ErrConflict, journalID)
	}

	originalRows, err := s.journalRepo.FindRowsByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rows of journal %s: %w", journalID, err)
	}

	now := time.Now().UTC()
	reversal := domain.Journal{
		JournalID:         uuid.NewString(),
		JournalDate:       original.JournalDate,
		Narration:         fmt.Sprintf("Reversal of: %s", original.Narration),
		RefKind:           domain.RefReversal,
		RefID:             original.JournalID,
		BranchID:          original.BranchID,
		TotalDebit:        original.TotalCredit,
		TotalCredit:       original.TotalDebit,
		Status:            domain.Posted,
		OriginalJournalID: &original.JournalID,
		CreatedAt:         now,
	}

	rows := make([]domain.LedgerRow, len(originalRows))
	entries := make([]domain.EntryLine, len(originalRows))
	for i, orig := range originalRows {
		entries[i] = domain.EntryLine{
			AccountID: orig.AccountID,
			Debit:     orig.Credit,
			Credit:    orig.Debit,
			PartyType: orig.RelatedEntityType,
			PartyID:   orig.RelatedEntityID,
		}
		rows[i] = domain.LedgerRow{
			RowID:             uuid.NewString(),
			JournalID:         reversal.JournalID,
			AccountID:         orig.AccountID,
			Debit:             orig.Credit,
			Credit:            orig.Debit,
			RefKind:           domain.RefReversal,
			RefID:             original.JournalID,
			RelatedEntityType: orig.RelatedEntityType,
			RelatedEntityID:   orig.RelatedEntityID,
			Narration:         reversal.Narration,
			RowDate:           reversal.JournalDate,
			CreatedAt:         now,
		}
	}
	reversal.Entries = entries

	if err := s.saveWithRetry(ctx, logger, reversal, rows); err != nil {
		logger.Error("Failed to post reversal",
			slog.String("original_journal_id", journalID),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal reversed",
		slog.String("original_journal_id", journalID),
		slog.String("reversing_journal_id", reversal.JournalID))
	return &reversal, nil
}

// ListRowsByAccount implements portssvc.JournalSvc.
func (s *journalService) ListRowsByAccount(ctx context.Context, accountID string, params dto.ListRowsParams) (*dto.ListRowsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRowPageLimit
	}

	rows, nextToken, err := s.journalRepo.ListRowsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows for account %s: %w", accountID, err)
	}

	return &dto.ListRowsResponse{Rows: rows, NextToken: nextToken}, nil
}
