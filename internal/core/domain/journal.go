package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType represents the kind of money movement a journal entry records.
type EntryType string

const (
	EntryTypePayment    EntryType = "PAYMENT"
	EntryTypeWithdrawal EntryType = "WITHDRAWAL"
	EntryTypeAdjustment EntryType = "ADJUSTMENT"
)

// EntryStatus represents the lifecycle state of a journal entry. Entries are
// written once; status may be flipped once by a reconciliation process.
type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "PENDING"
	EntryStatusSuccessful EntryStatus = "SUCCESSFUL"
	EntryStatusFailed     EntryStatus = "FAILED"
)

// JournalEntry is an immutable record of one balance movement. All entries
// produced by a single payment share a TxID and the source wallet's TxRef.
// Amount is signed: the source debit is negative, destination credits are
// positive, so the entries of a TxID group sum to zero.
type JournalEntry struct {
	ID        uuid.UUID         `json:"id"`
	TxID      string            `json:"tx_id"`
	TxRef     string            `json:"tx_ref"`
	WalletID  uuid.UUID         `json:"wallet_id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Type      EntryType         `json:"type"`
	Metadata  map[string]string `json:"metadata,omitempty"` // Opaque caller data, stored not interpreted
	Status    EntryStatus       `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// NetAmount sums the signed amounts of a transaction group. A conserved
// group nets to zero: the source debit equals the destination credits.
func NetAmount(entries []JournalEntry) int64 {
	var net int64
	for _, e := range entries {
		net += e.Amount
	}
	return net
}
