package handler

import (
	"wallet-ledger-service/internal/adapter/http/dto"
	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles split-payment endpoints.
type PaymentHandler struct {
	engine ports.PaymentEngine
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(engine ports.PaymentEngine) *PaymentHandler {
	return &PaymentHandler{engine: engine}
}

// ProcessPayment handles POST /api/v1/payments.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sourceID, err := uuid.Parse(req.SourceWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("source_wallet_id must be a UUID"))
		return
	}

	result, err := h.engine.ProcessPayment(c.Request.Context(), ports.PaymentRequest{
		SourceWalletID: sourceID,
		Amounts:        req.Amounts,
		Metadata:       req.Metadata,
		Category:       domain.ServiceCategory(req.Category),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromPaymentResult(result))
}
