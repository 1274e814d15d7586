package router

import (
	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/infrastructure/auth"
	"github.com/flamenca/backend/internal/infrastructure/config"
	"github.com/flamenca/backend/internal/infrastructure/logger"
	"github.com/flamenca/backend/internal/interfaces/http/handler"
	"github.com/flamenca/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Order        *handler.OrderHandler
	Product      *handler.ProductHandler
	Invoice      *handler.InvoiceHandler
	Sync         *handler.SyncHandler
	Webhook      *handler.WebhookHandler
	Notification *handler.NotificationHandler
	TimeEntry    *handler.TimeEntryHandler
	Incident     *handler.IncidentHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		gin.Recovery(),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.Health.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:       jwtService,
		SkipPaths:        []string{"/api/v1/health", "/api/v1/auth/login"},
		SkipPathPrefixes: []string{"/api/v1/webhooks"},
		Logger:           log,
	}))

	api.GET("/health", h.Health.Health)

	registerAuthRoutes(api, h.Auth)
	registerWebhookRoutes(api, h.Webhook)
	registerUserRoutes(api, h.User)
	registerOrderRoutes(api, h.Order, h.Invoice)
	registerProductRoutes(api, h.Product)
	registerInvoiceRoutes(api, h.Invoice)
	registerSyncRoutes(api, h.Sync)
	registerNotificationRoutes(api, h.Notification)
	registerTimeEntryRoutes(api, h.TimeEntry)
	registerIncidentRoutes(api, h.Incident)

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, h *handler.AuthHandler) {
	group := api.Group("/auth")
	group.POST("/login", h.Login)
	group.GET("/me", h.Me)
	group.POST("/change-password", h.ChangePassword)
}

func registerWebhookRoutes(api *gin.RouterGroup, h *handler.WebhookHandler) {
	api.POST("/webhooks/woocommerce", h.Receive)
}

func registerUserRoutes(api *gin.RouterGroup, h *handler.UserHandler) {
	group := api.Group("/users")
	group.GET("", middleware.RequirePermission(identity.PermViewEmployees), h.List)
	group.POST("", middleware.RequirePermission(identity.PermCreateEmployee), h.Create)
	group.GET("/:id", middleware.RequirePermission(identity.PermViewEmployees), h.Get)
	group.PUT("/:id", middleware.RequirePermission(identity.PermEditEmployee), h.Update)
	group.DELETE("/:id", middleware.RequirePermission(identity.PermDeleteEmployee), h.Delete)
	group.PUT("/:id/role", middleware.RequirePermission(identity.PermAssignRoles), h.AssignRole)
	group.POST("/:id/reset-password", middleware.RequirePermission(identity.PermEditEmployee), h.ResetPassword)
}

func registerOrderRoutes(api *gin.RouterGroup, h *handler.OrderHandler, invoices *handler.InvoiceHandler) {
	group := api.Group("/orders")
	group.GET("", middleware.RequirePermission(identity.PermViewOrders), h.List)
	group.POST("", middleware.RequirePermission(identity.PermCreateOrder), h.Create)
	group.POST("/checkout", middleware.RequirePermission(identity.PermProcessSale), h.Checkout)
	group.GET("/:id", middleware.RequirePermission(identity.PermViewOrders), h.Get)
	group.PUT("/:id/status", middleware.RequirePermission(identity.PermEditOrder), h.UpdateStatus)
	group.DELETE("/:id", middleware.RequirePermission(identity.PermDeleteOrder), h.Delete)
	group.GET("/:id/invoice", middleware.RequirePermission(identity.PermViewInvoices), invoices.GetByOrder)
}

func registerProductRoutes(api *gin.RouterGroup, h *handler.ProductHandler) {
	group := api.Group("/products")
	group.GET("", middleware.RequirePermission(identity.PermViewProducts), h.List)
	group.POST("", middleware.RequirePermission(identity.PermCreateProduct), h.Create)
	group.POST("/refresh", middleware.RequirePermission(identity.PermSyncStorefront), h.Refresh)
	group.GET("/:id", middleware.RequirePermission(identity.PermViewProducts), h.Get)
	group.PUT("/:id", middleware.RequirePermission(identity.PermEditProduct), h.Update)
	group.DELETE("/:id", middleware.RequirePermission(identity.PermDeleteProduct), h.Delete)
	group.POST("/:id/stock", middleware.RequirePermission(identity.PermEditProduct), h.AdjustStock)
}

func registerInvoiceRoutes(api *gin.RouterGroup, h *handler.InvoiceHandler) {
	group := api.Group("/invoices")
	group.GET("", middleware.RequirePermission(identity.PermViewInvoices), h.List)
	group.POST("", middleware.RequirePermission(identity.PermCreateInvoice), h.Create)
	group.GET("/:id", middleware.RequirePermission(identity.PermViewInvoices), h.Get)
	group.PUT("/:id/paid", middleware.RequirePermission(identity.PermCreateInvoice), h.MarkPaid)
}

func registerSyncRoutes(api *gin.RouterGroup, h *handler.SyncHandler) {
	group := api.Group("/sync")
	group.POST("/orders", middleware.RequirePermission(identity.PermSyncStorefront), h.SyncOrders)
	group.POST("/orders/:external_id", middleware.RequirePermission(identity.PermSyncStorefront), h.SyncSingleOrder)
	group.POST("/invoices", middleware.RequirePermission(identity.PermSyncAccounting), h.SyncInvoices)
	group.POST("/reconcile", middleware.RequirePermission(identity.PermSyncAccounting), h.ReconcileStatuses)
}

func registerNotificationRoutes(api *gin.RouterGroup, h *handler.NotificationHandler) {
	group := api.Group("/notifications")
	group.POST("", middleware.RequirePermission(identity.PermSendNotifications), h.Send)
	group.POST("/template", middleware.RequirePermission(identity.PermSendNotifications), h.SendTemplate)
	group.GET("/deliveries", middleware.RequirePermission(identity.PermViewNotifications), h.ListDeliveries)
	group.GET("/deliveries/:id", middleware.RequirePermission(identity.PermViewNotifications), h.GetDelivery)
	group.GET("/settings", h.GetSettings)
	group.PUT("/settings", h.UpdateSettings)

	templates := group.Group("/templates")
	templates.Use(middleware.RequirePermission(identity.PermManageNotificationTemplates))
	templates.GET("", h.ListTemplates)
	templates.POST("", h.CreateTemplate)
	templates.GET("/:id", h.GetTemplate)
	templates.PUT("/:id", h.UpdateTemplate)
	templates.DELETE("/:id", h.DeleteTemplate)
}

func registerTimeEntryRoutes(api *gin.RouterGroup, h *handler.TimeEntryHandler) {
	group := api.Group("/time-entries")
	group.POST("/clock-in", middleware.RequirePermission(identity.PermClockInOut), h.ClockIn)
	group.POST("/clock-out", middleware.RequirePermission(identity.PermClockInOut), h.ClockOut)
	group.GET("/clocked-in", middleware.RequirePermission(identity.PermViewTimeEntries), h.ClockedIn)
	group.GET("/:id/timesheet", middleware.RequirePermission(identity.PermViewTimeEntries), h.TimeSheet)
}

func registerIncidentRoutes(api *gin.RouterGroup, h *handler.IncidentHandler) {
	group := api.Group("/incidents")
	group.GET("", middleware.RequirePermission(identity.PermViewIncidents), h.List)
	group.POST("", middleware.RequirePermission(identity.PermCreateIncident), h.Report)
	group.GET("/:id", middleware.RequirePermission(identity.PermViewIncidents), h.Get)
	group.PUT("/:id", middleware.RequirePermission(identity.PermEditIncident), h.Update)
}
