// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
)

// PaymentRequest is the body of POST /api/v1/payments. Amounts[0] is the
// charge against the source wallet; the remaining positions fund the
// category's routing legs in order.
type PaymentRequest struct {
	SourceWalletID string            `json:"source_wallet_id" binding:"required,uuid"`
	Amounts        []int64           `json:"amounts" binding:"required"`
	Category       string            `json:"category" binding:"required"`
	Metadata       map[string]string `json:"metadata"`
}

// JournalEntryResponse mirrors one journal entry.
type JournalEntryResponse struct {
	ID        string            `json:"id"`
	TxID      string            `json:"tx_id"`
	TxRef     string            `json:"tx_ref"`
	WalletID  string            `json:"wallet_id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Type      string            `json:"type"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
}

// PaymentResponse is the success body of POST /api/v1/payments.
// JournalDegraded=true tells the caller the payment is committed but one or
// more journal entries are missing; the request must not be retried.
type PaymentResponse struct {
	TxID            string                 `json:"tx_id"`
	JournalDegraded bool                   `json:"journal_degraded"`
	Entries         []JournalEntryResponse `json:"entries"`
}

// BalanceResponse is the body of GET /api/v1/wallets/:id/balance.
type BalanceResponse struct {
	WalletID string `json:"wallet_id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// WalletResponse mirrors a wallet without its internal version counter.
type WalletResponse struct {
	ID            string `json:"id"`
	BusinessID    string `json:"business_id"`
	TxRef         string `json:"tx_ref"`
	Balance       int64  `json:"balance"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	CreatedAt     string `json:"created_at"`
}

// ProvisionRequest is the body of POST /api/v1/wallets.
type ProvisionRequest struct {
	BusinessID   string `json:"business_id" binding:"required,uuid"`
	BusinessName string `json:"business_name" binding:"required"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	LegalNumber  string `json:"legal_number"`
	Narration    string `json:"narration"`
}

// WithdrawRequest is the body of POST /api/v1/transfers/withdraw.
type WithdrawRequest struct {
	SourceWalletID string            `json:"source_wallet_id" binding:"required,uuid"`
	Amounts        []int64           `json:"amounts" binding:"required"`
	AccountNumber  string            `json:"account_number" binding:"required"`
	AccountName    string            `json:"account_name" binding:"required"`
	BankCode       string            `json:"bank_code" binding:"required"`
	Narration      string            `json:"narration"`
	Metadata       map[string]string `json:"metadata"`
}

// WithdrawResponse pairs the final ledger movement with the payout outcome.
type WithdrawResponse struct {
	Payment      PaymentResponse `json:"payment"`
	PayoutRef    string          `json:"payout_ref,omitempty"`
	PayoutStatus string          `json:"payout_status,omitempty"`
	PayoutError  string          `json:"payout_error,omitempty"`
}

// KYCRequest is the body of POST /api/v1/kyc.
type KYCRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	IDType      string `json:"id_type" binding:"required"`
	IDNumber    string `json:"id_number" binding:"required"`
	IDCountry   string `json:"id_country"`
}

// KYCResponse is the body of a successful KYC submission.
type KYCResponse struct {
	VerificationRef string `json:"verification_ref"`
}

// RouteLegResponse is one destination of a category's split policy.
type RouteLegResponse struct {
	WalletID    string `json:"wallet_id"`
	VectorIndex int    `json:"vector_index"`
}

// RoutingResponse is the body of GET /api/v1/routing/:category.
type RoutingResponse struct {
	Category string             `json:"category"`
	Legs     []RouteLegResponse `json:"legs"`
}

// FromJournalEntry converts a domain entry to its DTO.
func FromJournalEntry(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:        e.ID.String(),
		TxID:      e.TxID,
		TxRef:     e.TxRef,
		WalletID:  e.WalletID.String(),
		Amount:    e.Amount,
		Currency:  e.Currency,
		Type:      string(e.Type),
		Metadata:  e.Metadata,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

// FromPaymentResult converts an engine result to its DTO.
func FromPaymentResult(r *ports.PaymentResult) PaymentResponse {
	resp := PaymentResponse{
		TxID:            r.TxID,
		JournalDegraded: r.JournalDegraded,
		Entries:         make([]JournalEntryResponse, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		resp.Entries = append(resp.Entries, FromJournalEntry(e))
	}
	return resp
}

// FromWallet converts a domain wallet to its DTO.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:            w.ID.String(),
		BusinessID:    w.BusinessID.String(),
		TxRef:         w.TxRef,
		Balance:       w.Balance,
		Currency:      w.Currency,
		Status:        string(w.Status),
		AccountNumber: w.AccountNumber,
		BankName:      w.BankName,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
	}
}
