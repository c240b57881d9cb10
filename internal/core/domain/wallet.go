package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletStatus represents the lifecycle state of a wallet.
// Wallets are never deleted; a decommissioned wallet transitions to closed.
type WalletStatus string

const (
	WalletStatusActive    WalletStatus = "ACTIVE"
	WalletStatusSuspended WalletStatus = "SUSPENDED"
	WalletStatusClosed    WalletStatus = "CLOSED"
)

// Wallet is an internal balance-holding account. Balance is kept in minor
// currency units and must never go negative. The Version field drives
// optimistic concurrency: every balance mutation is a compare-and-swap
// against the version seen at read time.
type Wallet struct {
	ID            uuid.UUID    `json:"id"`
	BusinessID    uuid.UUID    `json:"business_id"`
	TxRef         string       `json:"tx_ref"` // Provisioning reference, copied onto journal entries
	Balance       int64        `json:"balance"`
	Currency      string       `json:"currency"`
	Status        WalletStatus `json:"status"`
	Version       int64        `json:"version"`
	AccountNumber string       `json:"account_number,omitempty"` // Virtual account opened at provisioning
	BankName      string       `json:"bank_name,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsActive reports whether the wallet may participate in payments.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
