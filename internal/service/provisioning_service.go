package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCurrency = "NGN"

// ProvisioningServiceImpl implements ports.ProvisioningService.
type ProvisioningServiceImpl struct {
	walletRepo ports.WalletRepository
	gateway    ports.RailGateway
	txGen      ports.TxIDGenerator
	log        zerolog.Logger
}

// NewProvisioningService creates a new ProvisioningServiceImpl.
func NewProvisioningService(
	walletRepo ports.WalletRepository,
	gateway ports.RailGateway,
	txGen ports.TxIDGenerator,
	log zerolog.Logger,
) *ProvisioningServiceImpl {
	return &ProvisioningServiceImpl{
		walletRepo: walletRepo,
		gateway:    gateway,
		txGen:      txGen,
		log:        log,
	}
}

// ProvisionWallet opens a virtual account on the payment rail and backs it
// with a ledger wallet. Re-provisioning an already-provisioned business does
// not create a second wallet; it refreshes the settlement account details on
// the existing one.
func (s *ProvisioningServiceImpl) ProvisionWallet(ctx context.Context, req ports.ProvisionRequest) (*domain.Wallet, error) {
	if req.BusinessID == uuid.Nil {
		return nil, apperror.Validation("business id is required")
	}

	existing, err := s.walletRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil && !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, apperror.ErrStorage(fmt.Errorf("lookup wallet: %w", err))
	}

	account, err := s.gateway.ProvisionAccount(ctx, req)
	if err != nil {
		return nil, apperror.ErrGatewayFailure(err)
	}

	if existing != nil {
		if err := s.walletRepo.UpdateSettlementAccount(ctx, existing.ID, account.AccountNumber, account.BankName); err != nil {
			return nil, apperror.ErrStorage(fmt.Errorf("update settlement account: %w", err))
		}
		existing.AccountNumber = account.AccountNumber
		existing.BankName = account.BankName

		s.log.Info().
			Str("wallet_id", existing.ID.String()).
			Str("business_id", req.BusinessID.String()).
			Msg("existing wallet re-provisioned with fresh settlement account")
		return existing, nil
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:            uuid.New(),
		BusinessID:    req.BusinessID,
		TxRef:         s.txGen.NewTxID(),
		Balance:       0,
		Currency:      defaultCurrency,
		Status:        domain.WalletStatusActive,
		Version:       0,
		AccountNumber: account.AccountNumber,
		BankName:      account.BankName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("business_id", req.BusinessID.String()).
		Str("account_number", wallet.AccountNumber).
		Msg("wallet provisioned")
	return wallet, nil
}
