package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/database"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/libraries"
	"github.com/mrlokans/catalog/internal/events"
	"github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// LibraryStore implementations
var _ http.LibraryStore = (*libraries.Repository)(nil)
var _ http.LibraryGetter = (*libraries.Repository)(nil)

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// HealthChecker implementations
var _ http.HealthChecker = (*database.Database)(nil)

// EventStore implementations
var _ audit.EventStore = (*auditrepo.Repository)(nil)

// =============================================================================
// Side Effects of Writes
// =============================================================================

var _ http.ChangeAuditor = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ http.ChangeNotifier = (*events.Notifier)(nil)

// Publisher implementations
var _ events.Publisher = (*events.Rabbit)(nil)
var _ events.Publisher = events.Nop{}

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
