package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bizdocs/docs" // registers the OpenAPI description
	"bizdocs/internal/domain"
	"bizdocs/internal/handler"
	"bizdocs/internal/middleware"
	"bizdocs/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth          *handler.AuthHandler
	Tenant        *handler.TenantHandler
	User          *handler.UserHandler
	TaxType       *handler.TaxTypeHandler
	PurchaseOrder *handler.DocumentHandler
	Quotation     *handler.DocumentHandler
	Health        *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, log logrus.FieldLogger, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT and a tenant
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	// Tax type master data
	taxTypes := protected.Group("/tax-types")
	taxTypes.GET("", h.TaxType.List)
	taxTypes.GET("/:id", h.TaxType.GetByID)
	taxTypes.POST("", middleware.RequireWriter(), h.TaxType.Create)
	taxTypes.PUT("/:id", middleware.RequireWriter(), h.TaxType.Update)
	taxTypes.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.TaxType.Delete)

	mountDocuments(protected.Group("/purchase-orders"), h.PurchaseOrder)
	quotations := protected.Group("/quotations")
	mountDocuments(quotations, h.Quotation)
	quotations.POST("/:id/send", middleware.RequireWriter(), h.Quotation.Send)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", h.Tenant.Create)
	admin.GET("/tenants", h.Tenant.List)
	admin.GET("/tenants/:id", h.Tenant.GetByID)
	admin.PUT("/tenants/:id", h.Tenant.Update)
	admin.DELETE("/tenants/:id", h.Tenant.Delete)

	return r
}

// mountDocuments registers the routes shared by every document kind.
// Preview and verify never persist anything, so viewers may call them.
func mountDocuments(g *gin.RouterGroup, h *handler.DocumentHandler) {
	g.GET("", h.List)
	g.POST("", middleware.RequireWriter(), h.Create)
	g.POST("/preview", h.Preview)
	g.POST("/verify", h.Verify)
	g.GET("/export/csv", h.ExportCSV)
	g.POST("/export/xlsx", h.ExportXLSX)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", middleware.RequireWriter(), h.Update)
	g.DELETE("/:id", middleware.RequireWriter(), h.Delete)
	g.GET("/:id/payload", h.Payload)
}
