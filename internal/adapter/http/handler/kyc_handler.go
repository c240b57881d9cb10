package handler

import (
	"wallet-ledger-service/internal/adapter/http/dto"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/apperror"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// KYCHandler handles identity verification endpoints.
type KYCHandler struct {
	kycSvc ports.KYCService
}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler(kycSvc ports.KYCService) *KYCHandler {
	return &KYCHandler{kycSvc: kycSvc}
}

// Submit handles POST /api/v1/kyc.
func (h *KYCHandler) Submit(c *gin.Context) {
	var req dto.KYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ref, err := h.kycSvc.Submit(c.Request.Context(), ports.KYCProfile{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		IDType:      req.IDType,
		IDNumber:    req.IDNumber,
		IDCountry:   req.IDCountry,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.KYCResponse{VerificationRef: ref})
}
