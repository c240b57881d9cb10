package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger-service/config"
	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentEngineImpl implements ports.PaymentEngine: one debit against the
// payer, one credit per routing leg, one journal group. There are no
// multi-key transactions underneath; every balance mutation is an
// independent compare-and-swap and failures after the source debit are
// unwound with compensating swaps.
type PaymentEngineImpl struct {
	walletRepo  ports.WalletRepository
	journalRepo ports.JournalRepository
	routing     *domain.RoutingTable
	txGen       ports.TxIDGenerator
	cfg         config.EngineConfig
	log         zerolog.Logger
}

// NewPaymentEngine creates a new PaymentEngineImpl.
func NewPaymentEngine(
	walletRepo ports.WalletRepository,
	journalRepo ports.JournalRepository,
	routing *domain.RoutingTable,
	txGen ports.TxIDGenerator,
	cfg config.EngineConfig,
	log zerolog.Logger,
) *PaymentEngineImpl {
	return &PaymentEngineImpl{
		walletRepo:  walletRepo,
		journalRepo: journalRepo,
		routing:     routing,
		txGen:       txGen,
		cfg:         cfg,
		log:         log,
	}
}

// ProcessPayment debits Amounts[0] from the source wallet and credits each
// routing leg of the category with its slice of the vector.
//
// Cancellation is honored up to, and during, the source debit. Once the
// debit lands the payment runs to completion on a detached context: a
// half-applied split must never be abandoned mid-flight.
//
// The engine performs no deduplication. Calling this twice with the same
// request moves money twice; at-most-once submission is the caller's
// contract via the idempotency layer.
func (e *PaymentEngineImpl) ProcessPayment(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentResult, error) {
	legs, err := e.routing.Resolve(req.Category)
	if err != nil {
		return nil, apperror.ErrUnknownCategory(string(req.Category))
	}
	if err := validateAmounts(req.Amounts, len(legs)); err != nil {
		return nil, apperror.ErrInvalidAmountVector(err.Error())
	}

	source, err := e.walletRepo.GetByID(ctx, req.SourceWalletID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, apperror.ErrWalletNotFound()
		}
		return nil, apperror.ErrStorage(fmt.Errorf("load source wallet: %w", err))
	}
	if !source.IsActive() {
		return nil, apperror.ErrWalletNotActive()
	}
	// Fast-fail only; the CAS re-checks under contention.
	if source.Balance < req.Amounts[0] {
		return nil, apperror.ErrInsufficientFunds()
	}

	txID := e.txGen.NewTxID()

	// Last cancellation point: nothing has been mutated yet.
	if ctx.Err() != nil {
		return nil, apperror.ErrCancelled()
	}

	if err := e.applyDelta(ctx, source.ID, -req.Amounts[0]); err != nil {
		return nil, e.mapDebitError(ctx, err)
	}

	// Point of no return: the source debit is committed. Detach from the
	// caller's context so cancellation cannot strand a half-applied split.
	ctx = context.WithoutCancel(ctx)

	applied := make([]domain.RouteLeg, 0, len(legs))
	for _, leg := range legs {
		amount := req.Amounts[leg.VectorIndex]
		if err := e.applyDelta(ctx, leg.WalletID, amount); err != nil {
			e.rollback(ctx, txID, source.ID, req.Amounts, applied)
			if errors.Is(err, domain.ErrWalletNotFound) {
				return nil, apperror.Wrap("WAL_001", "Destination wallet not found, payment rolled back",
					apperror.ErrWalletNotFound().HTTPStatus, err)
			}
			return nil, apperror.ErrStorage(fmt.Errorf("credit destination %s: %w", leg.WalletID, err))
		}
		applied = append(applied, leg)
	}

	entries := buildEntries(txID, source, req, legs)
	appendRes, appendErr := e.journalRepo.AppendBatch(ctx, entries)
	if appendErr != nil {
		// Balances are final; a journal gap is reconciled out of band, never
		// by retrying the payment. The LED_001 wrapper is what reconciliation
		// tooling greps for.
		e.log.Error().
			Err(apperror.ErrJournalWriteFailed(appendErr)).
			Str("tx_id", txID).
			Int("entries_total", len(entries)).
			Int("entries_written", len(appendRes.Succeeded)).
			Msg("journal write failed after balances committed")
	}

	e.log.Info().
		Str("tx_id", txID).
		Str("source_wallet_id", source.ID.String()).
		Str("category", string(req.Category)).
		Int64("amount", req.Amounts[0]).
		Bool("journal_degraded", appendErr != nil).
		Msg("payment processed")

	return &ports.PaymentResult{
		TxID:            txID,
		Entries:         entries,
		JournalDegraded: appendErr != nil,
	}, nil
}

// applyDelta applies one signed balance change through the CAS, retrying
// version conflicts with jittered exponential backoff. Every other failure
// is permanent.
func (e *PaymentEngineImpl) applyDelta(ctx context.Context, walletID uuid.UUID, delta int64) error {
	op := func() error {
		w, err := e.walletRepo.GetByID(ctx, walletID)
		if err != nil {
			return backoff.Permanent(err)
		}
		_, err = e.walletRepo.CompareAndSwapBalance(ctx, walletID, w.Version, delta)
		if err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}
	return backoff.Retry(op, e.newBackOff(ctx))
}

func (e *PaymentEngineImpl) newBackOff(ctx context.Context) backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.cfg.RetryBackoff
	bo.MaxInterval = e.cfg.RetryMaxBackoff
	bo.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(bo, e.cfg.MaxRetries), ctx)
}

func (e *PaymentEngineImpl) mapDebitError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return apperror.ErrCancelled()
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, domain.ErrVersionConflict):
		return apperror.ErrConcurrentModification(err)
	case errors.Is(err, domain.ErrWalletNotFound):
		return apperror.ErrWalletNotFound()
	default:
		return apperror.ErrStorage(fmt.Errorf("debit source wallet: %w", err))
	}
}

// rollback compensates a failed split: undo the credits that landed, then
// refund the source. Each step retries conflicts like the forward path. A
// rollback step that still fails is logged at error level with enough detail
// for manual reconciliation; there is nothing further to unwind into.
func (e *PaymentEngineImpl) rollback(ctx context.Context, txID string, sourceID uuid.UUID, amounts []int64, applied []domain.RouteLeg) {
	for i := len(applied) - 1; i >= 0; i-- {
		leg := applied[i]
		if err := e.applyDelta(ctx, leg.WalletID, -amounts[leg.VectorIndex]); err != nil {
			e.log.Error().
				Err(err).
				Str("tx_id", txID).
				Str("wallet_id", leg.WalletID.String()).
				Int64("amount", amounts[leg.VectorIndex]).
				Msg("rollback failed to reverse destination credit")
		}
	}
	if err := e.applyDelta(ctx, sourceID, amounts[0]); err != nil {
		e.log.Error().
			Err(err).
			Str("tx_id", txID).
			Str("wallet_id", sourceID.String()).
			Int64("amount", amounts[0]).
			Msg("rollback failed to refund source debit")
	}
}

// validateAmounts enforces the vector shape: one slot per routing leg plus
// the payer charge, non-negative throughout, and conservation — the payer
// charge equals the sum of the splits.
func validateAmounts(amounts []int64, legCount int) error {
	if len(amounts) != legCount+1 {
		return fmt.Errorf("expected %d amounts, got %d", legCount+1, len(amounts))
	}
	var sum int64
	for i, a := range amounts {
		if a < 0 {
			return fmt.Errorf("amount at index %d is negative", i)
		}
		if i > 0 {
			sum += a
		}
	}
	if amounts[0] <= 0 {
		return errors.New("charge amount must be positive")
	}
	if amounts[0] != sum {
		return fmt.Errorf("charge %d does not equal sum of splits %d", amounts[0], sum)
	}
	return nil
}

func buildEntries(txID string, source *domain.Wallet, req ports.PaymentRequest, legs []domain.RouteLeg) []domain.JournalEntry {
	now := time.Now().UTC()
	entryType := domain.EntryTypePayment
	if req.Category == domain.CategoryTransfer {
		entryType = domain.EntryTypeWithdrawal
	}

	entries := make([]domain.JournalEntry, 0, len(legs)+1)
	entries = append(entries, domain.JournalEntry{
		ID:        uuid.New(),
		TxID:      txID,
		TxRef:     source.TxRef,
		WalletID:  source.ID,
		Amount:    -req.Amounts[0],
		Currency:  source.Currency,
		Type:      entryType,
		Metadata:  req.Metadata,
		Status:    domain.EntryStatusSuccessful,
		CreatedAt: now,
	})
	for _, leg := range legs {
		entries = append(entries, domain.JournalEntry{
			ID:        uuid.New(),
			TxID:      txID,
			TxRef:     source.TxRef,
			WalletID:  leg.WalletID,
			Amount:    req.Amounts[leg.VectorIndex],
			Currency:  source.Currency,
			Type:      entryType,
			Metadata:  req.Metadata,
			Status:    domain.EntryStatusSuccessful,
			CreatedAt: now,
		})
	}
	return entries
}
