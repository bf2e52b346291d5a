package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// SortFields maps accepted sort fields to columns.
var SortFields = map[string]string{
	"id":         "id",
	"createdAt":  "created_at",
	"eventType":  "event_type",
	"entityType": "entity_type",
}

// DefaultSort lists the newest events first.
var DefaultSort = []catalog.SortOrder{{Field: "createdAt", Column: "created_at", Desc: true}}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// FindPage returns one page of audit events. An empty entityType matches
// every event.
func (r *Repository) FindPage(ctx context.Context, entityType string, req catalog.PageRequest) (*catalog.Page[entities.AuditEvent], error) {
	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	return database.Paginate[entities.AuditEvent](query, req)
}

// GetEventByID retrieves a single audit event by ID.
func (r *Repository) GetEventByID(id uint) (*entities.AuditEvent, error) {
	var event entities.AuditEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
