package handler

import (
	"wallet-ledger-service/internal/adapter/http/middleware"
	"wallet-ledger-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Engine          ports.PaymentEngine
	ReportingSvc    ports.ReportingService
	ProvisioningSvc ports.ProvisioningService
	TransferSvc     ports.TransferService
	KYCSvc          ports.KYCService
	DedupStore      ports.DedupStore // nil = idempotency keys disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Idempotency-Key support on mutating routes. Noop when no dedup store
	// is wired; requests without the header always pass through.
	idem := func(c *gin.Context) { c.Next() }
	if deps.DedupStore != nil {
		idem = middleware.Idempotency(deps.DedupStore, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	paymentHandler := NewPaymentHandler(deps.Engine)
	payments := v1.Group("/payments")
	{
		payments.POST("", idem, paymentHandler.ProcessPayment)
	}

	walletHandler := NewWalletHandler(deps.ProvisioningSvc, deps.ReportingSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", idem, walletHandler.Provision)
		wallets.GET("/:id/balance", walletHandler.GetBalance)
		wallets.GET("/:id/journal", walletHandler.ListJournal)
	}

	transferHandler := NewTransferHandler(deps.TransferSvc)
	transfers := v1.Group("/transfers")
	{
		transfers.POST("/withdraw", idem, transferHandler.Withdraw)
	}

	kycHandler := NewKYCHandler(deps.KYCSvc)
	v1.POST("/kyc", kycHandler.Submit)

	routingHandler := NewRoutingHandler(deps.ReportingSvc)
	v1.GET("/routing/:category", routingHandler.Resolve)

	return r
}
