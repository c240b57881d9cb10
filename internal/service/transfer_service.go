package service

import (
	"context"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// TransferServiceImpl implements ports.TransferService: an internal
// ledger movement through the engine followed by an external payout. The
// gateway call sits strictly after the engine commits, so a provider outage
// can never leave wallet balances half-applied.
type TransferServiceImpl struct {
	engine  ports.PaymentEngine
	gateway ports.RailGateway
	log     zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(engine ports.PaymentEngine, gateway ports.RailGateway, log zerolog.Logger) *TransferServiceImpl {
	return &TransferServiceImpl{engine: engine, gateway: gateway, log: log}
}

// WithdrawToBank reserves the funds internally via a transfer-category
// payment, then initiates the bank payout. If the payout leg fails the
// ledger movement stands and GatewayErr carries the failure; the funds sit
// in the transfer wallet until the payout is retried or reversed by an
// operator.
func (s *TransferServiceImpl) WithdrawToBank(ctx context.Context, req ports.WithdrawRequest) (*ports.WithdrawResult, error) {
	payment, err := s.engine.ProcessPayment(ctx, ports.PaymentRequest{
		SourceWalletID: req.SourceWalletID,
		Amounts:        req.Amounts,
		Metadata:       req.Metadata,
		Category:       domain.CategoryTransfer,
	})
	if err != nil {
		return nil, err
	}

	// Ledger is final past this point, with or without the payout.
	receipt, gatewayErr := s.gateway.SendToBank(
		context.WithoutCancel(ctx),
		req.AccountNumber, req.AccountName, req.BankCode,
		req.Amounts[0], req.Narration,
	)
	if gatewayErr != nil {
		s.log.Error().
			Err(gatewayErr).
			Str("tx_id", payment.TxID).
			Str("account_number", req.AccountNumber).
			Int64("amount", req.Amounts[0]).
			Msg("bank payout failed after ledger movement committed")
	} else {
		s.log.Info().
			Str("tx_id", payment.TxID).
			Str("payout_ref", receipt.Reference).
			Int64("amount", req.Amounts[0]).
			Msg("withdrawal paid out")
	}

	return &ports.WithdrawResult{
		Payment:        payment,
		GatewayReceipt: receipt,
		GatewayErr:     gatewayErr,
	}, nil
}
