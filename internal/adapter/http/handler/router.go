package handler

import (
	"points-ledger/internal/adapter/http/middleware"
	"points-ledger/internal/core/ports"
	"points-ledger/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20 // 1 MB

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	PointsSvc      ports.PointsService
	CheckoutSvc    ports.CheckoutService
	EligibilitySvc ports.EligibilityService
	QuerySvc       ports.WalletQueryService
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	RateLimitRule  middleware.RateLimitRule
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.LedgerMetrics // nil = no /metrics endpoint
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Health check (deep, pings every configured dependency)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limiting applies to mutating routes only, one counter per group.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil || deps.RateLimitRule.Limit <= 0 {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, deps.RateLimitRule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.PointsSvc, deps.QuerySvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", rl("wallets"), walletHandler.CreateWallet)
		wallets.GET("/:actor_id", walletHandler.GetWallet)
		wallets.GET("/:actor_id/entries", walletHandler.ListEntries)
		wallets.GET("/:actor_id/reconcile", walletHandler.Reconcile)
	}
	v1.PUT("/actors/:actor_id/status", rl("actors"), walletHandler.SetActorStatus)
	v1.GET("/merchants/:merchant_id/stats", walletHandler.MerchantStats)

	pointsHandler := NewPointsHandler(deps.PointsSvc)
	points := v1.Group("/points")
	{
		points.POST("/issue", rl("points"), pointsHandler.Issue)
		points.POST("/redeem", rl("points"), pointsHandler.Redeem)
	}

	checkoutHandler := NewCheckoutHandler(deps.CheckoutSvc)
	checkout := v1.Group("/checkout")
	{
		checkout.POST("", rl("checkout"), checkoutHandler.Commit)
		checkout.POST("/preview", checkoutHandler.Preview)
	}

	eligibilityHandler := NewEligibilityHandler(deps.EligibilitySvc)
	v1.GET("/eligibility", eligibilityHandler.Check)
	customers := v1.Group("/customers/:customer_id")
	{
		customers.GET("/blocked-merchants", eligibilityHandler.BlockedMerchants)
		customers.GET("/available-merchants", eligibilityHandler.AvailableMerchants)
		customers.GET("/check", eligibilityHandler.CheckCustomer)
		customers.DELETE("/eligibility-cache", rl("eligibility_cache"), eligibilityHandler.InvalidateCache)
	}

	return r
}
