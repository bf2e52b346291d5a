package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/catalog"
)

// Paginate counts the rows matched by query and loads the page described by
// req. Scopes are applied to the page load only (e.g. Preload), never to the
// count. Ordering always ends with the primary key so pages are stable.
func Paginate[T any](query *gorm.DB, req catalog.PageRequest, scopes ...func(*gorm.DB) *gorm.DB) (*catalog.Page[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(new(T)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	content := []T{}
	if total == 0 || req.Offset() >= total {
		return catalog.NewPage(content, req, total), nil
	}

	find := query.Session(&gorm.Session{}).Model(new(T)).Scopes(scopes...)
	hasID := false
	for _, s := range req.Sort {
		find = find.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Column}, Desc: s.Desc})
		if s.Column == "id" {
			hasID = true
		}
	}
	if !hasID {
		find = find.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	if err := find.Limit(req.Size).Offset(int(req.Offset())).Find(&content).Error; err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	return catalog.NewPage(content, req, total), nil
}
