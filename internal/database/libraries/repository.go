// Package libraries provides database operations for library management.
//
// This package implements the LibraryStore and LibraryGetter interfaces
// defined in internal/http.
//
// # Interface Implementation
//
//	var _ http.LibraryStore = (*Repository)(nil)
//
// # Usage
//
//	repo := libraries.NewRepository(db)
//	library, err := repo.GetByID(ctx, 1)
package libraries

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// SortFields maps accepted sort fields to columns.
var SortFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// Repository handles all library database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new libraries repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts library and assigns its ID. Nested books are not written.
func (r *Repository) Create(ctx context.Context, library *entities.Library) error {
	library.ID = 0
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(library).Error
}

// GetByID retrieves a library without its books.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Library, error) {
	var library entities.Library
	err := r.db.WithContext(ctx).First(&library, id).Error
	if err != nil {
		return nil, translate(err, id)
	}
	return &library, nil
}

// GetWithBooks retrieves a library together with the books it owns.
func (r *Repository) GetWithBooks(ctx context.Context, id uint) (*entities.Library, error) {
	var library entities.Library
	err := r.db.WithContext(ctx).Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&library, id).Error
	if err != nil {
		return nil, translate(err, id)
	}
	return &library, nil
}

// FindPage returns one page of libraries.
func (r *Repository) FindPage(ctx context.Context, req catalog.PageRequest) (*catalog.Page[entities.Library], error) {
	return database.Paginate[entities.Library](r.db.WithContext(ctx), req)
}

// Save writes every mutable column of an existing library.
func (r *Repository) Save(ctx context.Context, library *entities.Library) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(library).Error
}

// Delete removes a library and every book it owns in one transaction.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("library_id = ?", id).Delete(&entities.Book{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entities.Library{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.NewReferenceNotFound(entities.EntityTypeLibrary, id)
		}
		return nil
	})
}

func translate(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.NewReferenceNotFound(entities.EntityTypeLibrary, id)
	}
	return err
}
