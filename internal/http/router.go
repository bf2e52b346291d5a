package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(AccessLogMiddleware())
	router.Use(RecoveryMiddleware())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	if cfg.ReadOnly != nil {
		router.Use(cfg.ReadOnly.Handler())
	}
	router.Use(auth.APIKeyMiddleware(cfg.APIKeyHash, cfg.AuthLimiter))

	health := NewHealthController(cfg.Health, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	libraries := NewLibrariesController(cfg.Libraries, cfg.LibraryPaging, cfg.Auditor, cfg.Notifier)
	router.POST("/libraries", libraries.Create)
	router.GET("/libraries", libraries.List)
	router.GET("/libraries/:id", libraries.Get)
	router.PUT("/libraries/:id", libraries.Update)
	router.DELETE("/libraries/:id", libraries.Delete)

	books := NewBooksController(cfg.Books, cfg.Libraries, cfg.BookPaging, cfg.Auditor, cfg.Notifier)
	router.POST("/books", books.Create)
	router.GET("/books", books.List)
	router.GET("/books/:id", books.Get)
	router.PUT("/books/:id", books.Update)
	router.DELETE("/books/:id", books.Delete)

	api := router.Group("/api")
	if cfg.AuditReader != nil {
		audit := NewAuditController(cfg.AuditReader, cfg.AuditPaging)
		api.GET("/audit", audit.GetAuditEvents)
	}
	if cfg.TaskQueue != nil {
		tasks := NewTasksController(cfg.TaskQueue, cfg.AuditRetentionDays)
		api.POST("/admin/audit/cleanup", tasks.EnqueueAuditCleanup)
		api.GET("/tasks/:id", tasks.GetTaskStatus)
	}

	return router
}
