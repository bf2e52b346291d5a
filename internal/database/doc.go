// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, driver selection, migrations
//	├── paginate.go      # Shared page query helper
//	├── libraries/       # Library CRUD operations
//	├── books/           # Book CRUD operations
//	└── audit/           # Audit trail persistence
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over a *gorm.DB:
//
//	db, err := database.NewDatabase("./catalog.db")
//
//	librariesRepo := libraries.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB)
//
//	library, err := librariesRepo.GetByID(ctx, 1)
//
// Lookups of absent records return a *catalog.ReferenceNotFoundError rather
// than gorm.ErrRecordNotFound, so callers never depend on GORM error values.
//
// # Interface Implementations
//
//   - libraries.Repository: implements http.LibraryStore and http.LibraryGetter
//   - books.Repository: implements http.BookStore
//   - audit.Repository: implements audit.EventStore
//
// Compile-time checks live in internal/interfaces.
package database
