package integration

import (
	"context"
	"sync"
	"time"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"

	"github.com/google/uuid"
)

// inMemoryWalletRepo implements ports.WalletRepository with the same
// compare-and-swap semantics as the SQL store: version check and
// non-negative check under one lock. Concurrency tests rely on these
// semantics being real, not approximated.
type inMemoryWalletRepo struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.wallets[w.ID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *inMemoryWalletRepo) GetByBusinessID(_ context.Context, businessID uuid.UUID) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.BusinessID == businessID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (r *inMemoryWalletRepo) GetBalance(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[id]
	if !ok {
		return 0, domain.ErrWalletNotFound
	}
	return w.Balance, nil
}

func (r *inMemoryWalletRepo) CompareAndSwapBalance(_ context.Context, walletID uuid.UUID, expectedVersion, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return 0, domain.ErrWalletNotFound
	}
	if w.Version != expectedVersion {
		return 0, domain.ErrVersionConflict
	}
	if w.Balance+delta < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	w.Balance += delta
	w.Version++
	w.UpdatedAt = time.Now().UTC()
	return w.Version, nil
}

func (r *inMemoryWalletRepo) UpdateSettlementAccount(_ context.Context, walletID uuid.UUID, accountNumber, bankName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[walletID]
	if !ok {
		return domain.ErrWalletNotFound
	}
	w.AccountNumber = accountNumber
	w.BankName = bankName
	return nil
}

// inMemoryJournalRepo implements ports.JournalRepository as an append-only
// slice.
type inMemoryJournalRepo struct {
	mu      sync.Mutex
	entries []domain.JournalEntry
}

func newInMemoryJournalRepo() *inMemoryJournalRepo {
	return &inMemoryJournalRepo{}
}

func (r *inMemoryJournalRepo) AppendBatch(_ context.Context, entries []domain.JournalEntry) (ports.AppendResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := ports.AppendResult{}
	for _, e := range entries {
		r.entries = append(r.entries, e)
		res.Succeeded = append(res.Succeeded, e.ID)
	}
	return res, nil
}

func (r *inMemoryJournalRepo) ListByTxID(_ context.Context, txID string) ([]domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range r.entries {
		if e.TxID == txID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *inMemoryJournalRepo) ListByWallet(_ context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.JournalEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range r.entries {
		if e.WalletID == walletID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *inMemoryJournalRepo) all() []domain.JournalEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.JournalEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
