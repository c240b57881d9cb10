package handler

import (
	"time"

	"wallet-ledger-service/internal/adapter/http/dto"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet provisioning and read endpoints.
type WalletHandler struct {
	provisioningSvc ports.ProvisioningService
	reportingSvc    ports.ReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(provisioningSvc ports.ProvisioningService, reportingSvc ports.ReportingService) *WalletHandler {
	return &WalletHandler{provisioningSvc: provisioningSvc, reportingSvc: reportingSvc}
}

// Provision handles POST /api/v1/wallets.
func (h *WalletHandler) Provision(c *gin.Context) {
	var req dto.ProvisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		response.Error(c, apperror.Validation("business_id must be a UUID"))
		return
	}

	wallet, err := h.provisioningSvc.ProvisionWallet(c.Request.Context(), ports.ProvisionRequest{
		BusinessID:   businessID,
		BusinessName: req.BusinessName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		LegalNumber:  req.LegalNumber,
		Narration:    req.Narration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromWallet(wallet))
}

// GetBalance handles GET /api/v1/wallets/:id/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet id must be a UUID"))
		return
	}

	balance, currency, err := h.reportingSvc.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		WalletID: walletID.String(),
		Balance:  balance,
		Currency: currency,
	})
}

// ListJournal handles GET /api/v1/wallets/:id/journal?from=...&to=...
// Bounds are RFC 3339 timestamps; both are optional.
func (h *WalletHandler) ListJournal(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("wallet id must be a UUID"))
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			response.Error(c, apperror.Validation("from must be RFC 3339"))
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			response.Error(c, apperror.Validation("to must be RFC 3339"))
			return
		}
	}

	entries, err := h.reportingSvc.ListJournal(c.Request.Context(), walletID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromJournalEntry(e))
	}
	response.OK(c, out)
}
