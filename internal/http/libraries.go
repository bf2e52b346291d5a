package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

// LibraryGetter resolves a library by ID.
type LibraryGetter interface {
	GetByID(ctx context.Context, id uint) (*entities.Library, error)
}

// LibraryStore defines the database operations needed by LibrariesController.
type LibraryStore interface {
	LibraryGetter
	Create(ctx context.Context, library *entities.Library) error
	GetWithBooks(ctx context.Context, id uint) (*entities.Library, error)
	FindPage(ctx context.Context, req catalog.PageRequest) (*catalog.Page[entities.Library], error)
	Save(ctx context.Context, library *entities.Library) error
	Delete(ctx context.Context, id uint) error
}

// LibraryRequest is the body accepted by create and update. A supplied id is
// ignored.
type LibraryRequest struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,max=255"`
}

func (r *LibraryRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// libraryResponse always renders the books array, even when empty.
type libraryResponse struct {
	*entities.Library
	Books []entities.Book `json:"books"`
}

type LibrariesController struct {
	store   LibraryStore
	paging  catalog.PageOptions
	changes changeRecorder
}

func NewLibrariesController(store LibraryStore, paging catalog.PageOptions, auditor ChangeAuditor, notifier ChangeNotifier) *LibrariesController {
	return &LibrariesController{
		store:   store,
		paging:  paging,
		changes: changeRecorder{auditor: auditor, notifier: notifier},
	}
}

// Create handles POST /libraries
func (lc *LibrariesController) Create(c *gin.Context) {
	var req LibraryRequest
	if !bindJSON(c, &req) {
		return
	}

	library := &entities.Library{Name: req.Name}
	if err := lc.store.Create(c.Request.Context(), library); err != nil {
		respondCatalogError(c, err, "create library")
		return
	}

	lc.changes.record(c, entities.AuditEventCreate, entities.EntityTypeLibrary, library.ID, library.Name, library)
	respondCreated(c, library.ID, library)
}

// Update handles PUT /libraries/:id
func (lc *LibrariesController) Update(c *gin.Context) {
	var req LibraryRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := parseIDParam(c, "id", entities.EntityTypeLibrary)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	library, err := lc.store.GetByID(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "get library")
		return
	}

	library.Name = req.Name
	if err := lc.store.Save(ctx, library); err != nil {
		respondCatalogError(c, err, "update library")
		return
	}

	lc.changes.record(c, entities.AuditEventUpdate, entities.EntityTypeLibrary, library.ID, library.Name, library)
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /libraries/:id. Books owned by the library are
// deleted with it.
func (lc *LibrariesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", entities.EntityTypeLibrary)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	library, err := lc.store.GetByID(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "get library")
		return
	}

	if err := lc.store.Delete(ctx, id); err != nil {
		respondCatalogError(c, err, "delete library")
		return
	}

	lc.changes.record(c, entities.AuditEventDelete, entities.EntityTypeLibrary, id, library.Name, nil)
	c.Status(http.StatusNoContent)
}

// List handles GET /libraries
func (lc *LibrariesController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, lc.paging)
	if !ok {
		return
	}

	page, err := lc.store.FindPage(c.Request.Context(), req)
	if err != nil {
		respondCatalogError(c, err, "list libraries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /libraries/:id
func (lc *LibrariesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", entities.EntityTypeLibrary)
	if !ok {
		return
	}

	library, err := lc.store.GetWithBooks(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get library")
		return
	}

	books := library.Books
	if books == nil {
		books = []entities.Book{}
	}
	c.JSON(http.StatusOK, libraryResponse{Library: library, Books: books})
}
