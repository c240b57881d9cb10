package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/internal/core/ports/mocks"
	"wallet-ledger-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	svc     *TransferServiceImpl
	engine  *mocks.MockPaymentEngine
	gateway *mocks.MockRailGateway
	ctrl    *gomock.Controller
}

func setupTransfer(t *testing.T) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		engine:  mocks.NewMockPaymentEngine(ctrl),
		gateway: mocks.NewMockRailGateway(ctrl),
		ctrl:    ctrl,
	}
	d.svc = NewTransferService(d.engine, d.gateway, zerolog.Nop())
	return d
}

func TestTransferService_WithdrawToBank_Success(t *testing.T) {
	d := setupTransfer(t)
	defer d.ctrl.Finish()

	sourceID := uuid.New()
	req := ports.WithdrawRequest{
		SourceWalletID: sourceID,
		Amounts:        []int64{5_000, 4_800, 200},
		AccountNumber:  "0011223344",
		AccountName:    "Ada Obi",
		BankCode:       "058",
		Narration:      "weekly settlement",
	}

	d.engine.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pr ports.PaymentRequest) (*ports.PaymentResult, error) {
			assert.Equal(t, domain.CategoryTransfer, pr.Category)
			assert.Equal(t, sourceID, pr.SourceWalletID)
			assert.Equal(t, req.Amounts, pr.Amounts)
			return &ports.PaymentResult{TxID: "TX-w1"}, nil
		})
	d.gateway.EXPECT().SendToBank(gomock.Any(), "0011223344", "Ada Obi", "058", int64(5_000), "weekly settlement").
		Return(&ports.TransferReceipt{Reference: "PAY-1", Status: "processing"}, nil)

	result, err := d.svc.WithdrawToBank(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "TX-w1", result.Payment.TxID)
	assert.Equal(t, "PAY-1", result.GatewayReceipt.Reference)
	assert.NoError(t, result.GatewayErr)
}

func TestTransferService_WithdrawToBank_EngineFailureStopsPayout(t *testing.T) {
	d := setupTransfer(t)
	defer d.ctrl.Finish()

	d.engine.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientFunds())
	// No SendToBank expectation: the payout must never run without the
	// internal reservation.

	_, err := d.svc.WithdrawToBank(context.Background(), ports.WithdrawRequest{
		SourceWalletID: uuid.New(),
		Amounts:        []int64{5_000, 4_800, 200},
	})
	assertAppCode(t, err, "WAL_002")
}

func TestTransferService_WithdrawToBank_PayoutFailureKeepsLedger(t *testing.T) {
	d := setupTransfer(t)
	defer d.ctrl.Finish()

	d.engine.EXPECT().ProcessPayment(gomock.Any(), gomock.Any()).
		Return(&ports.PaymentResult{TxID: "TX-w2"}, nil)
	d.gateway.EXPECT().SendToBank(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("rail unavailable"))

	result, err := d.svc.WithdrawToBank(context.Background(), ports.WithdrawRequest{
		SourceWalletID: uuid.New(),
		Amounts:        []int64{5_000, 4_800, 200},
	})
	require.NoError(t, err, "ledger movement is final even when the payout leg fails")
	assert.Equal(t, "TX-w2", result.Payment.TxID)
	assert.Nil(t, result.GatewayReceipt)
	assert.Error(t, result.GatewayErr)
}
