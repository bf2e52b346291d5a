// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the interfaces they need next to the code that uses them;
// this package only records which concrete types satisfy them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - LibraryStore, LibraryGetter: Library persistence (internal/http/libraries.go)
//   - BookStore: Book persistence (internal/http/books.go)
//   - HealthChecker: Database liveness and counts (internal/http/health.go)
//   - EventStore: Audit event persistence (internal/audit/service.go)
//
// ## Write Side Effects
//
//   - ChangeAuditor: Records create/update/delete in the audit trail (internal/http/changes.go)
//   - ChangeNotifier: Broadcasts changes to other services (internal/http/changes.go)
//   - Publisher: Transport for change events, AMQP or no-op (internal/events/events.go)
//
// ## Background Work
//
//   - TaskQueue: Enqueue and inspect tasks over HTTP (internal/http/tasks.go)
//   - CleanupEnqueuer: Used by the retention scheduler (internal/scheduler/audit_retention.go)
//   - AuditEventCleaner: Deletes expired audit events (internal/tasks/cleanup_audit.go)
//
// # Adding a New Resource
//
// To add a new catalog resource (e.g., authors):
//
//  1. Add the entity in internal/entities/ and register it in
//     database.NewDatabaseFromConfig's AutoMigrate call.
//
//  2. Create sub-package: internal/database/authors/
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//     var SortFields = map[string]string{"id": "id", "name": "name"}
//
//  3. Declare the store interface and controller in internal/http/, using
//     parsePageRequest, bindJSON and respondCatalogError like the other
//     controllers, then register routes in router.go.
//
//  4. Add compile-time check in checks.go:
//
//     var _ http.AuthorStore = (*authors.Repository)(nil)
//
// # Adding a New Event Transport
//
//  1. Implement Publisher in internal/events/
//
//     type KafkaPublisher struct { ... }
//
//     func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error
//     func (p *KafkaPublisher) Close() error
//
//  2. Select it in entrypoint.newPublisher.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
