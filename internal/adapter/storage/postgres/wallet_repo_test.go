package postgres

import (
	"context"
	"testing"
	"time"

	"wallet-ledger-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet(businessID uuid.UUID) *domain.Wallet {
	return &domain.Wallet{
		ID:            uuid.New(),
		BusinessID:    businessID,
		TxRef:         "REF-TEST-001",
		Balance:       10_000,
		Currency:      "NGN",
		Status:        domain.WalletStatusActive,
		Version:       3,
		AccountNumber: "0123456789",
		BankName:      "Test Bank",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func walletTestColumns() []string {
	return []string{"id", "business_id", "tx_ref", "balance", "currency", "status", "version", "account_number", "bank_name", "created_at", "updated_at"}
}

func walletRow(w *domain.Wallet) *pgxmock.Rows {
	return pgxmock.NewRows(walletTestColumns()).AddRow(
		w.ID, w.BusinessID, w.TxRef, w.Balance, w.Currency, w.Status,
		w.Version, w.AccountNumber, w.BankName, w.CreatedAt, w.UpdatedAt,
	)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.ID, w.BusinessID, w.TxRef, w.Balance, w.Currency, w.Status,
			w.Version, w.AccountNumber, w.BankName, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(w.ID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByID(context.Background(), w.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.ID, result.ID)
	assert.Equal(t, w.Balance, result.Balance)
	assert.Equal(t, w.Version, result.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(walletTestColumns()))

	result, err := repo.GetByID(context.Background(), id)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByBusinessID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE business_id").
		WithArgs(w.BusinessID).
		WillReturnRows(walletRow(w))

	result, err := repo.GetByBusinessID(context.Background(), w.BusinessID)
	require.NoError(t, err)
	assert.Equal(t, w.BusinessID, result.BusinessID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT balance FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(2_500)))

	balance, err := repo.GetBalance(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(2_500), balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_CompareAndSwapBalance_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE wallets").
		WithArgs(id, int64(3), int64(-1_000)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(4)))

	newVersion, err := repo.CompareAndSwapBalance(context.Background(), id, 3, -1_000)
	require.NoError(t, err)
	assert.Equal(t, int64(4), newVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_CompareAndSwapBalance_VersionConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE wallets").
		WithArgs(id, int64(3), int64(-1_000)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}))
	mock.ExpectQuery("SELECT version, balance FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"version", "balance"}).AddRow(int64(5), int64(10_000)))

	_, err = repo.CompareAndSwapBalance(context.Background(), id, 3, -1_000)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_CompareAndSwapBalance_InsufficientFunds(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE wallets").
		WithArgs(id, int64(3), int64(-50_000)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}))
	mock.ExpectQuery("SELECT version, balance FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"version", "balance"}).AddRow(int64(3), int64(10_000)))

	_, err = repo.CompareAndSwapBalance(context.Background(), id, 3, -50_000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_CompareAndSwapBalance_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE wallets").
		WithArgs(id, int64(0), int64(100)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}))
	mock.ExpectQuery("SELECT version, balance FROM wallets WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"version", "balance"}))

	_, err = repo.CompareAndSwapBalance(context.Background(), id, 0, 100)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateSettlementAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE wallets SET account_number").
		WithArgs("9876543210", "New Bank", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateSettlementAccount(context.Background(), id, "9876543210", "New Bank")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_UpdateSettlementAccount_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE wallets SET account_number").
		WithArgs("9876543210", "New Bank", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateSettlementAccount(context.Background(), id, "9876543210", "New Bank")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
