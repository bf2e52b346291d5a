// Package books provides database operations for book management.
//
// This package implements the BookStore interface defined in internal/http.
//
// # Interface Implementation
//
//	var _ http.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(ctx, 7)
package books

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// SortFields maps accepted sort fields to columns.
var SortFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"libraryId": "library_id",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts book and assigns its ID. The owning library must already
// exist; it is never written through the book.
func (r *Repository) Create(ctx context.Context, book *entities.Book) error {
	book.ID = 0
	return r.db.WithContext(ctx).Omit("Library").Create(book).Error
}

// GetByID retrieves a book with its owning library.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Preload("Library").First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.NewReferenceNotFound(entities.EntityTypeBook, id)
		}
		return nil, err
	}
	return &book, nil
}

// FindPage returns one page of books, each with its owning library.
func (r *Repository) FindPage(ctx context.Context, req catalog.PageRequest) (*catalog.Page[entities.Book], error) {
	return database.Paginate[entities.Book](r.db.WithContext(ctx), req, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Library")
	})
}

// Save writes every mutable column of an existing book.
func (r *Repository) Save(ctx context.Context, book *entities.Book) error {
	return r.db.WithContext(ctx).Omit("Library").Save(book).Error
}

// Delete removes a single book.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewReferenceNotFound(entities.EntityTypeBook, id)
	}
	return nil
}
