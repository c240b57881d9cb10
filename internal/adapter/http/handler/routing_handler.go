package handler

import (
	"wallet-ledger-service/internal/adapter/http/dto"
	"wallet-ledger-service/internal/core/domain"
	"wallet-ledger-service/internal/core/ports"
	"wallet-ledger-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// RoutingHandler exposes the routing table for diagnostics.
type RoutingHandler struct {
	reportingSvc ports.ReportingService
}

// NewRoutingHandler creates a new RoutingHandler.
func NewRoutingHandler(reportingSvc ports.ReportingService) *RoutingHandler {
	return &RoutingHandler{reportingSvc: reportingSvc}
}

// Resolve handles GET /api/v1/routing/:category.
func (h *RoutingHandler) Resolve(c *gin.Context) {
	category := domain.ServiceCategory(c.Param("category"))

	legs, err := h.reportingSvc.ResolveRouting(c.Request.Context(), category)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.RoutingResponse{Category: string(category)}
	for _, leg := range legs {
		resp.Legs = append(resp.Legs, dto.RouteLegResponse{
			WalletID:    leg.WalletID.String(),
			VectorIndex: leg.VectorIndex,
		})
	}
	response.OK(c, resp)
}
