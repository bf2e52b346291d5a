package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/catalog"
	"github.com/mrlokans/catalog/internal/entities"
)

// BookStore defines the database operations needed by BooksController.
type BookStore interface {
	Create(ctx context.Context, book *entities.Book) error
	GetByID(ctx context.Context, id uint) (*entities.Book, error)
	FindPage(ctx context.Context, req catalog.PageRequest) (*catalog.Page[entities.Book], error)
	Save(ctx context.Context, book *entities.Book) error
	Delete(ctx context.Context, id uint) error
}

// LibraryRef identifies a library by id inside a book payload.
type LibraryRef struct {
	ID uint `json:"id"`
}

// BookRequest is the body accepted by create and update. The owning library
// is given as libraryId or, equivalently, as library.id. A supplied id is
// ignored.
type BookRequest struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name" validate:"required,max=255"`
	LibraryID uint        `json:"libraryId" validate:"required"`
	Library   *LibraryRef `json:"library,omitempty"`
}

func (r *BookRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.LibraryID == 0 && r.Library != nil {
		r.LibraryID = r.Library.ID
	}
}

type BooksController struct {
	books     BookStore
	libraries LibraryGetter
	paging    catalog.PageOptions
	changes   changeRecorder
}

func NewBooksController(books BookStore, libraries LibraryGetter, paging catalog.PageOptions, auditor ChangeAuditor, notifier ChangeNotifier) *BooksController {
	return &BooksController{
		books:     books,
		libraries: libraries,
		paging:    paging,
		changes:   changeRecorder{auditor: auditor, notifier: notifier},
	}
}

// Create handles POST /books
func (bc *BooksController) Create(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	library, err := bc.libraries.GetByID(ctx, req.LibraryID)
	if err != nil {
		respondCatalogError(c, err, "resolve library")
		return
	}

	book := &entities.Book{Name: req.Name, LibraryID: library.ID}
	if err := bc.books.Create(ctx, book); err != nil {
		respondCatalogError(c, err, "create book")
		return
	}
	book.Library = library

	bc.changes.record(c, entities.AuditEventCreate, entities.EntityTypeBook, book.ID, book.Name, book)
	respondCreated(c, book.ID, book)
}

// Update handles PUT /books/:id. The owning library is taken from the
// payload, so a book can move between libraries.
func (bc *BooksController) Update(c *gin.Context) {
	var req BookRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := parseIDParam(c, "id", entities.EntityTypeBook)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetByID(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "get book")
		return
	}

	library, err := bc.libraries.GetByID(ctx, req.LibraryID)
	if err != nil {
		respondCatalogError(c, err, "resolve library")
		return
	}

	book.Name = req.Name
	book.LibraryID = library.ID
	book.Library = library
	if err := bc.books.Save(ctx, book); err != nil {
		respondCatalogError(c, err, "update book")
		return
	}

	bc.changes.record(c, entities.AuditEventUpdate, entities.EntityTypeBook, book.ID, book.Name, book)
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /books/:id
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", entities.EntityTypeBook)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	book, err := bc.books.GetByID(ctx, id)
	if err != nil {
		respondCatalogError(c, err, "get book")
		return
	}

	if err := bc.books.Delete(ctx, id); err != nil {
		respondCatalogError(c, err, "delete book")
		return
	}

	bc.changes.record(c, entities.AuditEventDelete, entities.EntityTypeBook, id, book.Name, nil)
	c.Status(http.StatusNoContent)
}

// List handles GET /books
func (bc *BooksController) List(c *gin.Context) {
	req, ok := parsePageRequest(c, bc.paging)
	if !ok {
		return
	}

	page, err := bc.books.FindPage(c.Request.Context(), req)
	if err != nil {
		respondCatalogError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id", entities.EntityTypeBook)
	if !ok {
		return
	}

	book, err := bc.books.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCatalogError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, book)
}
