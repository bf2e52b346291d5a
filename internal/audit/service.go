// Package audit records catalog changes as audit events.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

// EventStore persists and queries audit events.
type EventStore interface {
	LogEvent(event *entities.AuditEvent) error
	FindPage(ctx context.Context, entityType string, req catalog.PageRequest) (*catalog.Page[entities.AuditEvent], error)
	DeleteOldEvents(olderThan time.Time) (int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo EventStore
}

// NewService creates a new audit service.
func NewService(repo EventStore) *Service {
	return &Service{repo: repo}
}

// Change describes one successful or failed write to a catalog entity.
type Change struct {
	EventType  entities.AuditEventType
	EntityType string
	EntityID   uint
	Name       string
	RequestID  string
	IPAddress  string
	Err        error
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("Failed to log audit event")
		}
	}()
}

// LogChange records a create, update or delete of a library or book.
func (s *Service) LogChange(change Change) {
	entityID := change.EntityID
	event := &entities.AuditEvent{
		EventType:   change.EventType,
		Action:      change.EntityType + "_" + string(change.EventType),
		Description: describe(change),
		EntityType:  change.EntityType,
		EntityID:    &entityID,
		RequestID:   change.RequestID,
		IPAddress:   change.IPAddress,
		Status:      entities.AuditStatusSuccess,
	}

	if change.Err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(change.Err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves one page of audit events, optionally for one entity type.
func (s *Service) GetEvents(ctx context.Context, entityType string, req catalog.PageRequest) (*catalog.Page[entities.AuditEvent], error) {
	return s.repo.FindPage(ctx, entityType, req)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func describe(change Change) string {
	var verb string
	switch change.EventType {
	case entities.AuditEventCreate:
		verb = "Created"
	case entities.AuditEventUpdate:
		verb = "Updated"
	default:
		verb = "Deleted"
	}
	return truncate(verb+" "+change.EntityType+": "+change.Name, 500)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
