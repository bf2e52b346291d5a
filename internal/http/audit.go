package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

// AuditReader lists recorded audit events.
type AuditReader interface {
	GetEvents(ctx context.Context, entityType string, req catalog.PageRequest) (*catalog.Page[entities.AuditEvent], error)
}

type AuditController struct {
	reader AuditReader
	paging catalog.PageOptions
}

func NewAuditController(reader AuditReader, paging catalog.PageOptions) *AuditController {
	return &AuditController{
		reader: reader,
		paging: paging,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit?entityType=library|book
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	entityType := c.Query("entityType")
	switch entityType {
	case "", entities.EntityTypeLibrary, entities.EntityTypeBook:
	default:
		respondBadRequest(c, "entityType must be one of: library, book")
		return
	}

	req, ok := parsePageRequest(c, ac.paging)
	if !ok {
		return
	}

	page, err := ac.reader.GetEvents(c.Request.Context(), entityType, req)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, page)
}
