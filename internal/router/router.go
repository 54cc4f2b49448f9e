package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Theijiii/plms-sys-sub004/internal/config"
	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/handler"
	"github.com/Theijiii/plms-sys-sub004/internal/middleware"
	"github.com/Theijiii/plms-sys-sub004/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	permitH *handler.PermitHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	permits := protected.Group("/permits")
	permits.GET("", permitH.List)
	permits.GET("/export.csv", permitH.ExportCSV)
	permits.GET("/:id", permitH.GetByID)
	permits.GET("/:id/documents", permitH.ListDocuments)
	permits.GET("/:id/documents/:doc/download", permitH.DownloadDocument)
	permits.POST("/:id/status", permitH.UpdateStatus)
	permits.GET("/:id/actions", permitH.ListActions)
	permits.GET("/:id/audit", permitH.ListAudit)

	// Register workbooks are an admin surface; reviewers work the permit routes.
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(domain.RoleAdmin))
	reports.GET("/register.xlsx", reportH.RegisterXLSX)

	return r
}
