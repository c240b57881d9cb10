package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wallet-ledger-service/config"
	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/internal/service"
	"wallet-ledger-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	engine      ports.PaymentEngine
	walletRepo  *inMemoryWalletRepo
	journalRepo *inMemoryJournalRepo
	sourceID    uuid.UUID
	shippingID  uuid.UUID
	bankingID   uuid.UUID
}

func newEngineFixture(t *testing.T, sourceBalance int64) *engineFixture {
	t.Helper()

	f := &engineFixture{
		walletRepo:  newInMemoryWalletRepo(),
		journalRepo: newInMemoryJournalRepo(),
		sourceID:    uuid.New(),
		shippingID:  uuid.New(),
		bankingID:   uuid.New(),
	}
	for id, balance := range map[uuid.UUID]int64{
		f.sourceID:   sourceBalance,
		f.shippingID: 0,
		f.bankingID:  0,
	} {
		require.NoError(t, f.walletRepo.Create(context.Background(), &domain.Wallet{
			ID:       id,
			Balance:  balance,
			Currency: "NGN",
			Status:   domain.WalletStatusActive,
		}))
	}

	routing, err := domain.NewRoutingTable(map[domain.ServiceCategory][]uuid.UUID{
		domain.CategoryShipping: {f.shippingID, f.bankingID},
	})
	require.NoError(t, err)

	// High retry ceiling: under heavy contention the engine is expected to
	// keep retrying version conflicts rather than surface them.
	cfg := config.EngineConfig{MaxRetries: 100, RetryBackoff: 100 * time.Microsecond, RetryMaxBackoff: time.Millisecond}
	f.engine = service.NewPaymentEngine(f.walletRepo, f.journalRepo, routing, service.NewTxIDSource(), cfg, zerolog.Nop())
	return f
}

func (f *engineFixture) pay(amounts []int64) (*ports.PaymentResult, error) {
	return f.engine.ProcessPayment(context.Background(), ports.PaymentRequest{
		SourceWalletID: f.sourceID,
		Amounts:        amounts,
		Category:       domain.CategoryShipping,
	})
}

func (f *engineFixture) mustBalance(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	b, err := f.walletRepo.GetBalance(context.Background(), id)
	require.NoError(t, err)
	return b
}

// Fifty goroutines pay concurrently from one wallet. Every payment must land
// exactly once: no lost updates, no negative balances, and the journal must
// net to zero.
func TestConcurrentPayments_NoLostUpdates(t *testing.T) {
	const (
		workers = 50
		charge  = int64(100)
	)
	f := newEngineFixture(t, workers*charge)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.pay([]int64{charge, 90, 10})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	assert.Equal(t, int64(0), f.mustBalance(t, f.sourceID))
	assert.Equal(t, int64(workers*90), f.mustBalance(t, f.shippingID))
	assert.Equal(t, int64(workers*10), f.mustBalance(t, f.bankingID))

	entries := f.journalRepo.all()
	assert.Len(t, entries, workers*3)
	assert.Zero(t, domain.NetAmount(entries), "journal must net to zero")
}

// Concurrent overspend: more demand than balance. Exactly the affordable
// number of payments succeed; the rest fail with insufficient funds and the
// source never goes negative.
func TestConcurrentPayments_OverspendNeverGoesNegative(t *testing.T) {
	const (
		workers = 20
		charge  = int64(100)
		funded  = int64(500) // covers 5 of the 20 payments
	)
	f := newEngineFixture(t, funded)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.pay([]int64{charge, 90, 10})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr), "unexpected error: %v", err)
		require.Equal(t, "WAL_002", appErr.Code, "unexpected error: %v", err)
	}
	assert.Equal(t, int(funded/charge), succeeded)

	source := f.mustBalance(t, f.sourceID)
	assert.GreaterOrEqual(t, source, int64(0))
	assert.Equal(t, funded-int64(succeeded)*charge, source)
	assert.Equal(t, int64(succeeded)*90, f.mustBalance(t, f.shippingID))
	assert.Equal(t, int64(succeeded)*10, f.mustBalance(t, f.bankingID))
}

// A payment whose routing leg points at a missing wallet must roll back the
// source debit and any credits already applied.
func TestMissingDestinationRollsBackCommittedLegs(t *testing.T) {
	f := newEngineFixture(t, 1_000)

	// Recreate the engine with a route whose second leg does not exist.
	routing, err := domain.NewRoutingTable(map[domain.ServiceCategory][]uuid.UUID{
		domain.CategoryShipping: {f.shippingID, uuid.New()},
	})
	require.NoError(t, err)
	cfg := config.EngineConfig{MaxRetries: 3, RetryBackoff: time.Millisecond, RetryMaxBackoff: 5 * time.Millisecond}
	engine := service.NewPaymentEngine(f.walletRepo, f.journalRepo, routing, service.NewTxIDSource(), cfg, zerolog.Nop())

	_, err = engine.ProcessPayment(context.Background(), ports.PaymentRequest{
		SourceWalletID: f.sourceID,
		Amounts:        []int64{100, 90, 10},
		Category:       domain.CategoryShipping,
	})
	require.Error(t, err)

	assert.Equal(t, int64(1_000), f.mustBalance(t, f.sourceID), "debit must be refunded")
	assert.Equal(t, int64(0), f.mustBalance(t, f.shippingID), "applied credit must be undone")
	assert.Empty(t, f.journalRepo.all(), "failed payment writes no journal entries")
}

// Two identical submissions both apply: the engine never dedupes.
func TestEngineDoubleAppliesIdenticalRequests(t *testing.T) {
	f := newEngineFixture(t, 2_000)

	first, err := f.pay([]int64{1_000, 900, 100})
	require.NoError(t, err)
	second, err := f.pay([]int64{1_000, 900, 100})
	require.NoError(t, err)

	assert.NotEqual(t, first.TxID, second.TxID)
	assert.Equal(t, int64(0), f.mustBalance(t, f.sourceID))
	assert.Equal(t, int64(1_800), f.mustBalance(t, f.shippingID))
	assert.Len(t, f.journalRepo.all(), 6)
}
