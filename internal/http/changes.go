package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/events"
)

// ChangeAuditor records writes in the audit trail.
type ChangeAuditor interface {
	LogChange(change audit.Change)
}

// ChangeNotifier broadcasts writes to other services.
type ChangeNotifier interface {
	Notify(ctx context.Context, event events.Event)
}

// changeRecorder fires the side effects of a successful write. Either
// dependency may be nil.
type changeRecorder struct {
	auditor  ChangeAuditor
	notifier ChangeNotifier
}

var eventActions = map[entities.AuditEventType]events.Action{
	entities.AuditEventCreate: events.ActionCreated,
	entities.AuditEventUpdate: events.ActionUpdated,
	entities.AuditEventDelete: events.ActionDeleted,
}

func (r changeRecorder) record(c *gin.Context, eventType entities.AuditEventType, entityType string, id uint, name string, payload any) {
	if r.auditor != nil {
		r.auditor.LogChange(audit.Change{
			EventType:  eventType,
			EntityType: entityType,
			EntityID:   id,
			Name:       name,
			RequestID:  RequestID(c),
			IPAddress:  c.ClientIP(),
		})
	}

	if r.notifier != nil {
		r.notifier.Notify(c.Request.Context(), events.Event{
			EntityType: entityType,
			Action:     eventActions[eventType],
			EntityID:   id,
			Payload:    payload,
			RequestID:  RequestID(c),
		})
	}
}
