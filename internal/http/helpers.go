package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/catalog/internal/catalog"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeValidationFailed = "validation_failed"
	CodeInvalidRequest   = "invalid_request"
	CodeInternalError    = "internal_error"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidRequest})
}

// respondValidationError sends a 400 listing every invalid field.
func respondValidationError(c *gin.Context, ve *catalog.ValidationError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   ve.Error(),
		Code:    CodeValidationFailed,
		Details: ve.Fields,
	})
}

// respondReferenceNotFound sends a bodiless 422. Absence is never reported as 404.
func respondReferenceNotFound(c *gin.Context, err error) {
	log.Debug().Err(err).
		Str("request_id", RequestID(c)).
		Msg("Reference not found")
	c.AbortWithStatus(http.StatusUnprocessableEntity)
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Error().Err(err).
		Str("context", context).
		Str("request_id", RequestID(c)).
		Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternalError})
}

// respondCatalogError maps a repository or validation error to a response.
func respondCatalogError(c *gin.Context, err error, context string) {
	if catalog.IsReferenceNotFound(err) {
		respondReferenceNotFound(c, err)
		return
	}
	if ve, ok := catalog.AsValidationError(err); ok {
		respondValidationError(c, ve)
		return
	}
	respondInternalError(c, err, context)
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with a Location header.
func respondCreated(c *gin.Context, id uint, data any) {
	c.Header("Location", locationFor(c, id))
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// locationFor builds "<scheme>://<host><request path>/<id>".
func locationFor(c *gin.Context, id uint) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.SplitN(proto, ",", 2)[0]))
	}
	path := strings.TrimSuffix(c.Request.URL.Path, "/")
	return scheme + "://" + c.Request.Host + path + "/" + strconv.FormatUint(uint64(id), 10)
}

// --- Parameter Parsing ---

// parseIDParam extracts an unsigned integer ID from URL parameters.
// An unparseable ID cannot name an existing record, so it is answered like
// any other absent one: 422 and 0, false.
func parseIDParam(c *gin.Context, paramName, entity string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondReferenceNotFound(c, fmt.Errorf("%s %q not found: %w", entity, idStr, catalog.ErrReferenceNotFound))
		return 0, false
	}
	return uint(id), true
}

// parsePageRequest reads page, size and sort query parameters.
// Responds with 400 and returns false on an unknown sort field.
func parsePageRequest(c *gin.Context, opts catalog.PageOptions) (catalog.PageRequest, bool) {
	req, err := catalog.ParsePageRequest(c.Query("page"), c.Query("size"), c.QueryArray("sort"), opts)
	if err != nil {
		respondCatalogError(c, err, "parse page request")
		return catalog.PageRequest{}, false
	}
	return req, true
}

// bindJSON decodes the request body into dst and validates it. Responds with
// 400 and returns false when the body is malformed or invalid.
func bindJSON(c *gin.Context, dst interface{ normalize() }) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondValidationError(c, catalog.NewValidationError(catalog.FieldError{
			Field:   "body",
			Message: "malformed JSON body: " + bindErrorMessage(err),
		}))
		return false
	}
	dst.normalize()
	if err := catalog.Validate(dst); err != nil {
		respondCatalogError(c, err, "validate payload")
		return false
	}
	return true
}

func bindErrorMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	return err.Error()
}
