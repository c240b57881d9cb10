package handler

import (
	"wallet-ledger-service/internal/adapter/http/dto"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles withdrawal endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Withdraw handles POST /api/v1/transfers/withdraw. A 201 means the ledger
// movement committed; the payout leg's outcome rides in the body and may
// carry an error without failing the request.
func (h *TransferHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sourceID, err := uuid.Parse(req.SourceWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("source_wallet_id must be a UUID"))
		return
	}

	result, err := h.transferSvc.WithdrawToBank(c.Request.Context(), ports.WithdrawRequest{
		SourceWalletID: sourceID,
		Amounts:        req.Amounts,
		AccountNumber:  req.AccountNumber,
		AccountName:    req.AccountName,
		BankCode:       req.BankCode,
		Narration:      req.Narration,
		Metadata:       req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.WithdrawResponse{Payment: dto.FromPaymentResult(result.Payment)}
	if result.GatewayReceipt != nil {
		resp.PayoutRef = result.GatewayReceipt.Reference
		resp.PayoutStatus = result.GatewayReceipt.Status
	}
	if result.GatewayErr != nil {
		resp.PayoutError = result.GatewayErr.Error()
	}
	response.Created(c, resp)
}
