package http

import (
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Libraries LibraryStore
	Books     BookStore
	Health    HealthChecker

	// Paging and sorting per resource
	LibraryPaging catalog.PageOptions
	BookPaging    catalog.PageOptions
	AuditPaging   catalog.PageOptions

	// Side effects of writes (optional)
	Auditor  ChangeAuditor
	Notifier ChangeNotifier

	// Audit trail listing (optional)
	AuditReader AuditReader

	// Task queue (optional)
	TaskQueue          TaskQueue
	AuditRetentionDays int

	// Write protection
	ReadOnly       *readonly.Middleware
	APIKeyHash     string
	AuthLimiter    *auth.RateLimiter
	AllowedOrigins []string

	// Application info
	Version string
}
