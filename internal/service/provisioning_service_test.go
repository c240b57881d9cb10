package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type provisioningTestDeps struct {
	svc        *ProvisioningServiceImpl
	walletRepo *mocks.MockWalletRepository
	gateway    *mocks.MockRailGateway
	txGen      *mocks.MockTxIDGenerator
	ctrl       *gomock.Controller
}

func setupProvisioning(t *testing.T) *provisioningTestDeps {
	ctrl := gomock.NewController(t)
	d := &provisioningTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		gateway:    mocks.NewMockRailGateway(ctrl),
		txGen:      mocks.NewMockTxIDGenerator(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewProvisioningService(d.walletRepo, d.gateway, d.txGen, zerolog.Nop())
	return d
}

func TestProvisioningService_ProvisionWallet_New(t *testing.T) {
	d := setupProvisioning(t)
	defer d.ctrl.Finish()

	businessID := uuid.New()
	req := ports.ProvisionRequest{
		BusinessID:   businessID,
		BusinessName: "Acme Stores",
		FirstName:    "Ada",
		LastName:     "Obi",
		Email:        "ada@acme.test",
	}

	d.walletRepo.EXPECT().GetByBusinessID(gomock.Any(), businessID).Return(nil, domain.ErrWalletNotFound)
	d.gateway.EXPECT().ProvisionAccount(gomock.Any(), req).Return(&ports.ProvisionedAccount{
		Reference:     "ACC-1",
		AccountNumber: "0123456789",
		AccountName:   "Acme Stores",
		BankName:      "Providus Bank",
	}, nil)
	d.txGen.EXPECT().NewTxID().Return("TX-ref-1")
	d.walletRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, w *domain.Wallet) error {
			assert.Equal(t, businessID, w.BusinessID)
			assert.Equal(t, int64(0), w.Balance)
			assert.Equal(t, int64(0), w.Version)
			assert.Equal(t, domain.WalletStatusActive, w.Status)
			assert.Equal(t, "0123456789", w.AccountNumber)
			return nil
		})

	wallet, err := d.svc.ProvisionWallet(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Providus Bank", wallet.BankName)
	assert.Equal(t, "TX-ref-1", wallet.TxRef)
}

func TestProvisioningService_ProvisionWallet_ExistingUpdatesSettlement(t *testing.T) {
	d := setupProvisioning(t)
	defer d.ctrl.Finish()

	businessID := uuid.New()
	existing := &domain.Wallet{
		ID:            uuid.New(),
		BusinessID:    businessID,
		Balance:       5_000,
		Status:        domain.WalletStatusActive,
		AccountNumber: "1111111111",
		BankName:      "Old Bank",
	}
	req := ports.ProvisionRequest{BusinessID: businessID, BusinessName: "Acme Stores"}

	d.walletRepo.EXPECT().GetByBusinessID(gomock.Any(), businessID).Return(existing, nil)
	d.gateway.EXPECT().ProvisionAccount(gomock.Any(), req).Return(&ports.ProvisionedAccount{
		AccountNumber: "2222222222",
		BankName:      "New Bank",
	}, nil)
	d.walletRepo.EXPECT().UpdateSettlementAccount(gomock.Any(), existing.ID, "2222222222", "New Bank").Return(nil)
	// No Create: re-provisioning must not mint a second wallet.

	wallet, err := d.svc.ProvisionWallet(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, wallet.ID)
	assert.Equal(t, int64(5_000), wallet.Balance, "balance untouched by re-provisioning")
	assert.Equal(t, "2222222222", wallet.AccountNumber)
	assert.Equal(t, "New Bank", wallet.BankName)
}

func TestProvisioningService_ProvisionWallet_GatewayFailure(t *testing.T) {
	d := setupProvisioning(t)
	defer d.ctrl.Finish()

	businessID := uuid.New()
	req := ports.ProvisionRequest{BusinessID: businessID}

	d.walletRepo.EXPECT().GetByBusinessID(gomock.Any(), businessID).Return(nil, domain.ErrWalletNotFound)
	d.gateway.EXPECT().ProvisionAccount(gomock.Any(), req).Return(nil, errors.New("rail timeout"))

	_, err := d.svc.ProvisionWallet(context.Background(), req)
	assertAppCode(t, err, "PRV_002")
}

func TestProvisioningService_ProvisionWallet_MissingBusinessID(t *testing.T) {
	d := setupProvisioning(t)
	defer d.ctrl.Finish()

	_, err := d.svc.ProvisionWallet(context.Background(), ports.ProvisionRequest{})
	assertAppCode(t, err, "WAL_005")
}
