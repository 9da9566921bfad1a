package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed cursor pagination parameters. The cursor is a plain
// row offset carried opaquely by the client.
type Query struct {
	Limit  int
	Cursor int
}

// FromContext extracts and clamps pagination params from the request.
func FromContext(c *gin.Context) Query {
	limit := parseIntOr(c.DefaultQuery("limit", ""), DefaultLimit)
	cursor := parseIntOr(c.DefaultQuery("cursor", ""), 0)

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if cursor < 0 {
		cursor = 0
	}
	return Query{Limit: limit, Cursor: cursor}
}

// Window fetches one page: limit+1 rows at the cursor offset. When the
// extra row comes back it is dropped and nextCursor points at cursor+limit;
// otherwise nextCursor is nil and the result set is exhausted.
func Window[T any](tx *gorm.DB, q Query, dest *[]T) (*int, error) {
	if err := tx.Offset(q.Cursor).Limit(q.Limit + 1).Find(dest).Error; err != nil {
		return nil, err
	}
	if len(*dest) <= q.Limit {
		return nil, nil
	}
	*dest = (*dest)[:q.Limit]
	next := q.Cursor + q.Limit
	return &next, nil
}

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
