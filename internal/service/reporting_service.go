package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// defaultJournalWindow bounds open-ended journal queries.
const defaultJournalWindow = 30 * 24 * time.Hour

// ReportingServiceImpl implements ports.ReportingService. Read-only: it
// never mutates a balance and never touches the CAS path.
type ReportingServiceImpl struct {
	walletRepo  ports.WalletRepository
	journalRepo ports.JournalRepository
	routing     *domain.RoutingTable
	log         zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(
	walletRepo ports.WalletRepository,
	journalRepo ports.JournalRepository,
	routing *domain.RoutingTable,
	log zerolog.Logger,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		walletRepo:  walletRepo,
		journalRepo: journalRepo,
		routing:     routing,
		log:         log,
	}
}

// GetBalance returns a wallet's current balance and currency.
func (s *ReportingServiceImpl) GetBalance(ctx context.Context, walletID uuid.UUID) (int64, string, error) {
	w, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return 0, "", apperror.ErrWalletNotFound()
		}
		return 0, "", apperror.ErrStorage(fmt.Errorf("get balance: %w", err))
	}
	return w.Balance, w.Currency, nil
}

// ListJournal returns a wallet's journal entries within [from, to]. Zero
// bounds default to the last 30 days.
func (s *ReportingServiceImpl) ListJournal(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.JournalEntry, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-defaultJournalWindow)
	}
	if from.After(to) {
		return nil, apperror.Validation("journal range start is after end")
	}

	entries, err := s.journalRepo.ListByWallet(ctx, walletID, from, to)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("list journal: %w", err))
	}
	return entries, nil
}

// ResolveRouting returns the destination legs configured for a category.
func (s *ReportingServiceImpl) ResolveRouting(_ context.Context, category domain.ServiceCategory) ([]domain.RouteLeg, error) {
	legs, err := s.routing.Resolve(category)
	if err != nil {
		return nil, apperror.ErrUnknownCategory(string(category))
	}
	return legs, nil
}
