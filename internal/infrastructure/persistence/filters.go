package persistence

import (
	"strings"

	"github.com/pedezap/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// orderableColumns limits ORDER BY to known column names so the filter's
// OrderBy value can never inject SQL
var orderableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"code":       true,
	"price":      true,
	"sort_order": true,
	"number":     true,
	"status":     true,
}

// applyFilter applies ordering and pagination from the shared filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyOrdering(query, filter)
	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

// applyOrdering applies only the ordering portion of the filter
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := filter.OrderBy
	if !orderableColumns[column] {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}
