package handler

import (
	"escrow-ledger-engine/internal/adapter/http/middleware"
	redisStore "escrow-ledger-engine/internal/adapter/storage/redis"
	"escrow-ledger-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	EscrowSvc      ports.EscrowService
	MilestoneSvc   ports.MilestoneService
	OnboardingSvc  ports.OnboardingService
	StatusSvc      ports.StatusService
	PayoutGateway  ports.PayoutGateway
	LedgerRepo     ports.LedgerRepository
	CampaignRepo   ports.CampaignRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
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
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	walletHandler := NewWalletHandler(deps.EscrowSvc, deps.StatusSvc, deps.LedgerRepo)
	campaignHandler := NewCampaignHandler(deps.CampaignRepo, deps.EscrowSvc)
	milestoneHandler := NewMilestoneHandler(deps.EscrowSvc, deps.MilestoneSvc)
	onboardingHandler := NewOnboardingHandler(deps.OnboardingSvc, deps.StatusSvc)
	webhookHandler := NewWebhookHandler(deps.PayoutGateway, deps.OnboardingSvc, deps.Logger)
	opsHandler := NewOpsHandler(deps.StatusSvc)

	// API v1 routes
	v1 := r.Group("/api/v1")

	wallets := v1.Group("/wallets/:walletID")
	{
		wallets.POST("/deposit", rl("deposits"), walletHandler.Deposit)
		wallets.POST("/withdraw", rl("withdrawals"), walletHandler.Withdraw)
		wallets.GET("/summary", rl("reads"), walletHandler.Summary)
		wallets.GET("/events", rl("reads"), walletHandler.ListEvents)
	}

	campaigns := v1.Group("/campaigns")
	{
		campaigns.POST("", rl("campaigns"), campaignHandler.Create)
		campaigns.GET("/:campaignID", rl("reads"), campaignHandler.Get)
		campaigns.POST("/:campaignID/allocate", rl("campaigns"), campaignHandler.Allocate)
		campaigns.POST("/:campaignID/milestones", rl("campaigns"), campaignHandler.CreateMilestone)
	}

	milestones := v1.Group("/milestones/:milestoneID")
	{
		milestones.POST("/lock", rl("milestones"), milestoneHandler.Lock)
		milestones.POST("/submit", rl("milestones"), milestoneHandler.Submit)
		milestones.POST("/approve", rl("milestones"), milestoneHandler.Approve)
		milestones.POST("/dispute", rl("milestones"), milestoneHandler.Dispute)
		milestones.POST("/refund", rl("milestones"), milestoneHandler.Refund)
	}

	creators := v1.Group("/creators/:creatorID/onboarding")
	{
		creators.POST("", rl("onboarding"), onboardingHandler.Initiate)
		creators.POST("/regenerate", rl("onboarding"), onboardingHandler.RegenerateLink)
		creators.GET("", rl("reads"), onboardingHandler.Status)
	}

	// Provider callbacks (signature-verified, outside /api/v1)
	r.POST("/webhooks/payout-provider", rl("webhooks"), webhookHandler.HandlePayoutProvider)

	// Operator surface
	r.GET("/ops/reconciliation/stalled", rl("reads"), opsHandler.StalledReconciliations)

	return r
}
