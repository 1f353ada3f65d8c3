package persistence

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowed order columns shared by the document repositories; anything else
// falls back to the default ordering to keep user input out of the ORDER BY
// clause.
var orderableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"issue_date": true,
}

// applyFilter applies pagination and ordering from a shared.Filter. Search
// and field filters are applied by the individual repositories since the
// searchable columns differ per table.
func applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && orderableColumns[filter.OrderBy] {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else if defaultOrder != "" {
		query = query.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
