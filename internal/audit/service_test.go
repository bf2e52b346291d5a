package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/database"
	auditRepo "github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := auditRepo.NewRepository(db.DB)
	svc := NewService(repo)

	return svc, db.DB
}

func waitForAction(t *testing.T, db *gorm.DB, action string) entities.AuditEvent {
	t.Helper()
	var event entities.AuditEvent
	require.Eventually(t, func() bool {
		return db.Where("action = ?", action).First(&event).Error == nil
	}, 2*time.Second, 10*time.Millisecond)
	return event
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      "library_create",
		Description: "Created library: Central",
		Status:      entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, "library_create", saved.Action)
}

func TestService_LogChange(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful create", func(t *testing.T) {
		svc.LogChange(Change{
			EventType:  entities.AuditEventCreate,
			EntityType: entities.EntityTypeBook,
			EntityID:   7,
			Name:       "Dune",
			RequestID:  "req-1",
			IPAddress:  "10.0.0.1",
		})

		event := waitForAction(t, db, "book_create")
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "Created book: Dune", event.Description)
		assert.Equal(t, "req-1", event.RequestID)
		require.NotNil(t, event.EntityID)
		assert.Equal(t, uint(7), *event.EntityID)
	})

	t.Run("failed delete", func(t *testing.T) {
		svc.LogChange(Change{
			EventType:  entities.AuditEventDelete,
			EntityType: entities.EntityTypeLibrary,
			EntityID:   3,
			Name:       "Central",
			Err:        errors.New("database is locked"),
		})

		event := waitForAction(t, db, "library_delete")
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Equal(t, "Deleted library: Central", event.Description)
		assert.Contains(t, event.ErrorMsg, "database is locked")
	})
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Log(&entities.AuditEvent{
			EventType:  entities.AuditEventUpdate,
			Action:     "book_update",
			EntityType: entities.EntityTypeBook,
			Status:     entities.AuditStatusSuccess,
		}))
	}
	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType:  entities.AuditEventCreate,
		Action:     "library_create",
		EntityType: entities.EntityTypeLibrary,
		Status:     entities.AuditStatusSuccess,
	}))

	req := catalog.PageRequest{Page: 0, Size: 10, Sort: auditRepo.DefaultSort}

	page, err := svc.GetEvents(context.Background(), "", req)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.TotalElements)

	page, err = svc.GetEvents(context.Background(), entities.EntityTypeBook, req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)

	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventDelete,
		Action:    "old",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-40 * 24 * time.Hour),
	}))
	require.NoError(t, svc.Log(&entities.AuditEvent{
		EventType: entities.AuditEventCreate,
		Action:    "new",
		Status:    entities.AuditStatusSuccess,
	}))

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&entities.AuditEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("a", 20)
	got := truncate(long, 10)
	assert.Len(t, got, 10)
	assert.True(t, strings.HasSuffix(got, "..."))
}
