package api

import (
	"net/http" // HTTP status codes

	"chainvora/internal/blob"       // Proof file store
	"chainvora/internal/directory"  // Wallet identities
	"chainvora/internal/domain"     // Importing domain models
	"chainvora/internal/ledger"     // Pool and allocation ledger
	"chainvora/internal/lifecycle"  // Funding request state machine
	"chainvora/internal/metrics"    // Prometheus collectors
	"chainvora/internal/middleware" // Session, roles, limits
	"chainvora/internal/progress"   // Milestones and status updates
	"chainvora/internal/timeline"   // Derived views

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps holds everything the HTTP surface calls into
type Deps struct {
	Ledger       *ledger.Ledger          // Pool contributions and allocations
	Requests     *lifecycle.Lifecycle    // Funding requests
	Directory    *directory.Directory    // Wallet identities
	Timeline     *timeline.Service       // Timeline and status feed
	Progress     *progress.Tracker       // Milestones and status updates
	Proofs       ProofStore              // Proof upload store
	UploadDir    string                  // Served under /uploads when set
	TokenSecret  string                  // Session token secret
	EnforceRoles bool                    // Reject callers whose role is not allowed
	CORSOrigins  []string                // Allowed CORS origins
	Limiter      *middleware.RateLimiter // Nil disables rate limiting
	AccessLog    bool                    // Use gin's request logger
}

// NewRouter builds the gin engine with every route of the API
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	if d.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Metrics(), middleware.CORS(d.CORSOrigins))

	r.GET("/metrics", gin.WrapH(metrics.Handler())) // Prometheus scrape endpoint
	if d.UploadDir != "" {
		r.Static(blob.PublicPrefix, d.UploadDir) // Stored proof files
	}
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.SessionMiddleware(d.TokenSecret))
	if d.Limiter != nil {
		apiGroup.Use(d.Limiter.Handler())
	}

	admin := middleware.RequireRole(d.EnforceRoles, domain.RoleAdmin)
	reviewer := middleware.RequireRole(d.EnforceRoles, domain.RoleAdmin, domain.RoleAuditor)
	community := middleware.RequireRole(d.EnforceRoles, domain.RoleCommunity)
	center := middleware.RequireRole(d.EnforceRoles, domain.RoleCommunity, domain.RoleAdmin)

	// Pool and allocations
	apiGroup.POST("/fund-pool", admin, AddFundHandler(d.Ledger))
	apiGroup.GET("/fund-pool", ListFundPoolHandler(d.Ledger))
	apiGroup.GET("/fund-pool/summary", SummaryHandler(d.Ledger))
	apiGroup.POST("/funds", admin, AllocateHandler(d.Ledger))
	apiGroup.GET("/funds", ListAllocationsHandler(d.Ledger))
	apiGroup.GET("/public/approved", ListAllocationsHandler(d.Ledger))

	// Funding requests
	apiGroup.POST("/requests", community, SubmitRequestHandler(d.Requests))
	apiGroup.GET("/requests", ListRequestsHandler(d.Requests))
	apiGroup.GET("/requests/:id", GetRequestHandler(d.Requests))
	apiGroup.PUT("/requests/:id", reviewer, UpdateRequestStatusHandler(d.Requests))
	apiGroup.POST("/requests/:id/remark", reviewer, AddRemarkHandler(d.Requests))
	apiGroup.PUT("/requests/:id/proof", community, UploadProofHandler(d.Requests, d.Proofs))

	// Transaction log
	apiGroup.GET("/transactions", ListTransactionsHandler(d.Ledger))
	apiGroup.GET("/transactions/verify", VerifyChainHandler(d.Ledger))

	// Identities
	apiGroup.POST("/users/connect", ConnectHandler(d.Directory))
	apiGroup.GET("/users", ListUsersHandler(d.Directory))
	apiGroup.GET("/users/:wallet", GetUserHandler(d.Directory))

	// Derived views
	apiGroup.GET("/fund-timeline", FundTimelineHandler(d.Timeline))
	apiGroup.GET("/status", StatusFeedHandler(d.Timeline))

	// Progress tracking
	apiGroup.GET("/milestones", ListMilestonesHandler(d.Progress))
	apiGroup.POST("/milestones", center, AddMilestoneHandler(d.Progress))
	apiGroup.PUT("/milestones/:id/complete", center, CompleteMilestoneHandler(d.Progress))
	apiGroup.GET("/status-updates", ListStatusUpdatesHandler(d.Progress))
	apiGroup.POST("/status-updates", center, PostStatusUpdateHandler(d.Progress))

	return r
}
