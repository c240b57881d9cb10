package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JournalRepo implements ports.JournalRepository. The journal table is
// append-only; this repo exposes no update or delete.
type JournalRepo struct {
	pool Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(pool Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

const journalColumns = `id, tx_id, tx_ref, wallet_id, amount, currency, type, metadata, status, created_at`

const insertJournalEntry = `INSERT INTO journal_entries (` + journalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// AppendBatch writes all entries in one round trip using a pgx batch. The
// batch is pipelined, not transactional: entries succeed or fail
// individually. Succeeded always reflects exactly the entries that landed so
// a partial failure can be reconciled entry by entry.
func (r *JournalRepo) AppendBatch(ctx context.Context, entries []domain.JournalEntry) (ports.AppendResult, error) {
	result := ports.AppendResult{Succeeded: make([]uuid.UUID, 0, len(entries))}
	if len(entries) == 0 {
		return result, nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		meta, err := json.Marshal(e.Metadata)
		if err != nil {
			return result, fmt.Errorf("marshal journal metadata: %w", err)
		}
		batch.Queue(insertJournalEntry,
			e.ID, e.TxID, e.TxRef, e.WalletID, e.Amount, e.Currency,
			e.Type, meta, e.Status, e.CreatedAt,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	var firstErr error
	for _, e := range entries {
		if _, err := br.Exec(); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("append journal entry %s: %w", e.ID, err)
			}
			continue
		}
		result.Succeeded = append(result.Succeeded, e.ID)
	}
	return result, firstErr
}

// ListByTxID returns all entries belonging to one transaction group, in
// insertion order.
func (r *JournalRepo) ListByTxID(ctx context.Context, txID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE tx_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("list journal by tx_id: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByWallet returns a wallet's entries within [from, to], newest first.
func (r *JournalRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE wallet_id = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, walletID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list journal by wallet: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			e    domain.JournalEntry
			meta []byte
		)
		err := rows.Scan(
			&e.ID, &e.TxID, &e.TxRef, &e.WalletID, &e.Amount, &e.Currency,
			&e.Type, &meta, &e.Status, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal journal metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entries, nil
		}
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
