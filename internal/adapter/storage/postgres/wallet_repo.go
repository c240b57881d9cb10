package postgres

import (
	"context"
	"errors"
	"fmt"

	"wallet-ledger-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `id, business_id, tx_ref, balance, currency, status, version, account_number, bank_name, created_at, updated_at`

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.BusinessID, w.TxRef, w.Balance, w.Currency, w.Status,
		w.Version, w.AccountNumber, w.BankName, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetByBusinessID fetches the wallet owned by a business.
func (r *WalletRepo) GetByBusinessID(ctx context.Context, businessID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE business_id = $1`
	return r.scanWallet(r.pool.QueryRow(ctx, query, businessID))
}

// GetBalance reads the current balance of a wallet.
func (r *WalletRepo) GetBalance(ctx context.Context, id uuid.UUID) (int64, error) {
	var balance int64
	err := r.pool.QueryRow(ctx, `SELECT balance FROM wallets WHERE id = $1`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrWalletNotFound
		}
		return 0, fmt.Errorf("get wallet balance: %w", err)
	}
	return balance, nil
}

// CompareAndSwapBalance applies delta iff the version matches and the result
// stays non-negative. Both conditions live in the UPDATE's WHERE clause, so
// the check-and-apply is one atomic statement at the storage layer — a
// concurrent writer can cost us a version conflict but never a lost update
// or a negative balance.
func (r *WalletRepo) CompareAndSwapBalance(ctx context.Context, walletID uuid.UUID, expectedVersion, delta int64) (int64, error) {
	query := `UPDATE wallets
		SET balance = balance + $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $2 AND balance + $3 >= 0
		RETURNING version`

	var newVersion int64
	err := r.pool.QueryRow(ctx, query, walletID, expectedVersion, delta).Scan(&newVersion)
	if err == nil {
		return newVersion, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("cas wallet balance: %w", err)
	}

	// Zero rows: triage which guard rejected the update.
	var currentVersion, currentBalance int64
	err = r.pool.QueryRow(ctx, `SELECT version, balance FROM wallets WHERE id = $1`, walletID).
		Scan(&currentVersion, &currentBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrWalletNotFound
		}
		return 0, fmt.Errorf("cas triage read: %w", err)
	}
	if currentVersion != expectedVersion {
		return 0, domain.ErrVersionConflict
	}
	return 0, domain.ErrInsufficientFunds
}

// UpdateSettlementAccount refreshes the virtual account details after a
// re-provisioning call.
func (r *WalletRepo) UpdateSettlementAccount(ctx context.Context, walletID uuid.UUID, accountNumber, bankName string) error {
	query := `UPDATE wallets SET account_number = $1, bank_name = $2, updated_at = NOW() WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, accountNumber, bankName, walletID)
	if err != nil {
		return fmt.Errorf("update settlement account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// scanWallet is a helper to scan a single row into a Wallet.
func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.BusinessID, &w.TxRef, &w.Balance, &w.Currency, &w.Status,
		&w.Version, &w.AccountNumber, &w.BankName, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
