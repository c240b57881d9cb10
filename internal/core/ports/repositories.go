package ports

import (
	"context"
	"time"

	"wallet-ledger-service/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// WalletRepository defines persistence operations for wallets. Balance
// mutation goes exclusively through CompareAndSwapBalance: the store applies
// the version check and the non-negative check in a single atomic statement,
// never as a read-then-write pair in application code.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*domain.Wallet, error)
	GetBalance(ctx context.Context, id uuid.UUID) (int64, error)
	// CompareAndSwapBalance applies delta (which may be negative) to the
	// wallet's balance iff the stored version equals expectedVersion and the
	// resulting balance stays non-negative. Returns the new version on
	// success; domain.ErrWalletNotFound, domain.ErrVersionConflict or
	// domain.ErrInsufficientFunds otherwise.
	CompareAndSwapBalance(ctx context.Context, walletID uuid.UUID, expectedVersion int64, delta int64) (int64, error)
	// UpdateSettlementAccount refreshes the virtual account details written
	// back by a re-provisioning call.
	UpdateSettlementAccount(ctx context.Context, walletID uuid.UUID, accountNumber, bankName string) error
}

// AppendResult reports the outcome of a batched journal append. The batch is
// not atomic across entries; Succeeded lets reconciliation identify exactly
// which entries landed when the append partially failed.
type AppendResult struct {
	Succeeded []uuid.UUID
}

// JournalRepository defines append-only persistence for journal entries.
// Entries are write-once; no update or delete is exposed.
type JournalRepository interface {
	AppendBatch(ctx context.Context, entries []domain.JournalEntry) (AppendResult, error)
	ListByTxID(ctx context.Context, txID string) ([]domain.JournalEntry, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.JournalEntry, error)
}

// DedupStore is the caller-side idempotency facility offered by the HTTP
// adapter. The engine itself never dedupes; a caller that needs at-most-once
// submission supplies a key which is claimed here before the engine runs.
type DedupStore interface {
	// Claim atomically claims a key. Returns true if the key was free.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// SaveResult stores the response payload for a claimed key.
	SaveResult(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// GetResult returns the stored payload, or nil if none yet.
	GetResult(ctx context.Context, key string) ([]byte, error)
}
