package postgres

import (
	"fmt"

	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// orderClause maps validated sort parameters onto an ORDER BY expression.
// NULL deadlines sort as the greatest value (last under asc, first under
// desc) and ties always break by ascending id so pagination stays stable.
func orderClause(params repository.ListParams) string {
	dir := "ASC"
	nulls := "NULLS LAST"
	if params.Order == domain.OrderDesc {
		dir = "DESC"
		nulls = "NULLS FIRST"
	}

	switch params.SortBy {
	case domain.SortByCreatedAt:
		return fmt.Sprintf("created_at %s, id ASC", dir)
	case domain.SortByTitle:
		// Case-insensitive alphabetical sort.
		return fmt.Sprintf("lower(title) %s, id ASC", dir)
	default:
		return fmt.Sprintf("deadline %s %s, id ASC", dir, nulls)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
