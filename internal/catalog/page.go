package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

// SortOrder orders a page by one column. Field is the public (JSON) name,
// Column the storage column it maps to.
type SortOrder struct {
	Field  string
	Column string
	Desc   bool
}

func (s SortOrder) String() string {
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return s.Field + "," + dir
}

// PageRequest is a zero-based page index, a page size and an ordering.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset returns the number of rows preceding the requested page,
// saturating at math.MaxInt64.
func (p PageRequest) Offset() int64 {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return math.MaxInt64
	}
	return int64(p.Page) * int64(p.Size)
}

// maxPage is the largest page index whose offset fits in an int64.
func maxPage(size int) int {
	limit := math.MaxInt64 / int64(size)
	if limit > math.MaxInt {
		return math.MaxInt
	}
	return int(limit)
}

// PageOptions controls how raw query parameters become a PageRequest.
type PageOptions struct {
	DefaultSize int
	MaxSize     int
	// SortFields maps accepted sort fields to storage columns.
	SortFields  map[string]string
	DefaultSort []SortOrder
}

// ParsePageRequest builds a PageRequest from raw page, size and sort values.
// Missing or malformed page/size values fall back to defaults; an unknown
// sort field is a validation error.
func ParsePageRequest(page, size string, sorts []string, opts PageOptions) (PageRequest, error) {
	defaultSize := opts.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if defaultSize > maxSize {
		defaultSize = maxSize
	}

	req := PageRequest{Page: 0, Size: defaultSize}

	// An out-of-range page saturates at math.MaxInt and is clamped below.
	if n, err := strconv.Atoi(strings.TrimSpace(page)); (err == nil || errors.Is(err, strconv.ErrRange)) && n > 0 {
		req.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(size)); err == nil && n > 0 {
		req.Size = n
		if req.Size > maxSize {
			req.Size = maxSize
		}
	}
	if limit := maxPage(req.Size); req.Page > limit {
		req.Page = limit
	}

	for _, raw := range sorts {
		orders, err := parseSort(raw, opts.SortFields)
		if err != nil {
			return PageRequest{}, err
		}
		req.Sort = append(req.Sort, orders...)
	}
	if len(req.Sort) == 0 {
		req.Sort = append(req.Sort, opts.DefaultSort...)
	}

	return req, nil
}

// parseSort accepts "field", "field,asc", "field,desc" and
// "field1,field2,desc" where a trailing direction applies to every field.
func parseSort(raw string, allowed map[string]string) ([]SortOrder, error) {
	parts := strings.Split(raw, ",")
	desc := false
	if n := len(parts); n > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[n-1])) {
		case "desc":
			desc = true
			parts = parts[:n-1]
		case "asc":
			parts = parts[:n-1]
		}
	}

	var orders []SortOrder
	for _, p := range parts {
		field := strings.TrimSpace(p)
		if field == "" {
			continue
		}
		column, ok := allowed[field]
		if !ok {
			return nil, NewValidationError(FieldError{
				Field:   "sort",
				Message: fmt.Sprintf("cannot sort by %q", field),
			})
		}
		orders = append(orders, SortOrder{Field: field, Column: column, Desc: desc})
	}
	return orders, nil
}

// Page is a bounded, ordered slice of a list result plus its metadata.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
}

// NewPage assembles a Page for req from the fetched content and the total
// row count. Content is never nil so it always serializes as an array.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:          content,
		Page:             req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
	}
}
