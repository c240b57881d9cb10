package ports

import (
	"context"
	"time"

	"wallet-ledger-service/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// TxIDGenerator produces the transaction-group identifiers that tie the
// journal entries of one payment together. Collisions are a correctness
// violation, so implementations must be collision-resistant by construction.
type TxIDGenerator interface {
	NewTxID() string
}

// PaymentRequest holds validated input for the split-payment engine.
// Amounts[0] is the net charge to the payer; positions 1..n map onto the
// routing legs of Category in order.
type PaymentRequest struct {
	SourceWalletID uuid.UUID
	Amounts        []int64
	Metadata       map[string]string
	Category       domain.ServiceCategory
}

// PaymentResult is the committed outcome of a payment. JournalDegraded=true
// means balances moved but one or more journal entries failed to persist —
// the payment is final and MUST NOT be retried; the gap is reconciled
// out of band.
type PaymentResult struct {
	TxID            string
	Entries         []domain.JournalEntry
	JournalDegraded bool
}

// PaymentEngine is the split-payment core: atomic multi-wallet mutation with
// journal writing. Re-invoking ProcessPayment with identical arguments
// double-applies by design; deduplication is the caller's contract.
type PaymentEngine interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
}

// ReportingService exposes the read-only surface: balances, journal slices
// and routing diagnostics.
type ReportingService interface {
	GetBalance(ctx context.Context, walletID uuid.UUID) (int64, string, error)
	ListJournal(ctx context.Context, walletID uuid.UUID, from, to time.Time) ([]domain.JournalEntry, error)
	ResolveRouting(ctx context.Context, category domain.ServiceCategory) ([]domain.RouteLeg, error)
}

// ProvisionRequest describes the holder of a new wallet.
type ProvisionRequest struct {
	BusinessID   uuid.UUID
	BusinessName string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	LegalNumber  string // BVN or equivalent holder legal id
	Narration    string
}

// ProvisioningService opens wallets through the external payment rail.
type ProvisioningService interface {
	ProvisionWallet(ctx context.Context, req ProvisionRequest) (*domain.Wallet, error)
}

// WithdrawRequest moves funds out of a wallet to an external bank account.
type WithdrawRequest struct {
	SourceWalletID uuid.UUID
	Amounts        []int64 // Same shape as PaymentRequest.Amounts, category transfer
	AccountNumber  string
	AccountName    string
	BankCode       string
	Narration      string
	Metadata       map[string]string
}

// WithdrawResult pairs the internal ledger movement with the external
// transfer receipt. The internal movement is final even if the external leg
// later fails; GatewayReceipt is nil in that case.
type WithdrawResult struct {
	Payment        *PaymentResult
	GatewayReceipt *TransferReceipt
	GatewayErr     error
}

// TransferService orchestrates withdrawal: internal reservation through the
// engine, then the external bank transfer outside the critical section.
type TransferService interface {
	WithdrawToBank(ctx context.Context, req WithdrawRequest) (*WithdrawResult, error)
}

// --- External collaborators (payment-rail provider) ---

// ProvisionedAccount is the virtual bank account the rail opens for a wallet.
type ProvisionedAccount struct {
	Reference     string
	AccountNumber string
	AccountName   string
	BankName      string
}

// TransferReceipt acknowledges an outbound bank transfer.
type TransferReceipt struct {
	Reference string
	Status    string
}

// KYCProfile is the person/business identity payload forwarded for
// verification. Stored nowhere locally.
type KYCProfile struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	IDType      string
	IDNumber    string
	IDCountry   string
}

// RailGateway is the thin client for the external payment-rail provider.
// None of its calls sit inside the engine's critical section.
type RailGateway interface {
	ProvisionAccount(ctx context.Context, req ProvisionRequest) (*ProvisionedAccount, error)
	SendToBank(ctx context.Context, accountNumber, accountName, bankCode string, amount int64, narration string) (*TransferReceipt, error)
	SubmitKYC(ctx context.Context, profile KYCProfile) (string, error)
}

// KYCService forwards identity profiles to the verification provider.
// Entirely independent of the ledger.
type KYCService interface {
	Submit(ctx context.Context, profile KYCProfile) (string, error)
}
