package student

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/uptrace/bun"
)

const (
	SortCreatedAtAsc  = "createdAt_asc"
	SortCreatedAtDesc = "createdAt_desc"

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// ListParams are the validated listing parameters.
type ListParams struct {
	Q              string
	District       string
	IncludeDeleted bool
	Page           int
	Limit          int
	Sort           string
}

// Page is one ordered page of records plus the total matching count.
type Page struct {
	Items      []Student
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// ParseListParams validates listing query parameters before any storage
// access. Page floors to 1, limit clamps into [1, maxLimit], an unknown sort
// falls back to createdAt_desc; a bad district or non-numeric page/limit is a
// validation error.
func ParseListParams(values url.Values) (ListParams, error) {
	p := ListParams{
		Q:              strings.TrimSpace(values.Get("q")),
		District:       values.Get("district"),
		IncludeDeleted: values.Get("includeDeleted") == "true",
		Page:           defaultPage,
		Limit:          defaultLimit,
		Sort:           SortCreatedAtDesc,
	}

	if p.District != "" && !ValidDistrict(p.District) {
		return p, newValidationError("Invalid district", Fields{
			"address.district": "District must be selected from the list",
		})
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, newValidationError("Invalid pagination", Fields{
				"page": "Page and limit must be numbers",
			})
		}
		if page > 1 {
			p.Page = page
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return p, newValidationError("Invalid pagination", Fields{
				"page": "Page and limit must be numbers",
			})
		}
		switch {
		case limit < 1:
			p.Limit = 1
		case limit > maxLimit:
			p.Limit = maxLimit
		default:
			p.Limit = limit
		}
	}

	if values.Get("sort") == SortCreatedAtAsc {
		p.Sort = SortCreatedAtAsc
	}

	return p, nil
}

// apply narrows q to the records matching the parameters. The free-text term
// is matched as a literal case-insensitive substring against the code, the
// name parts and the city; LIKE metacharacters in it are escaped.
func (p ListParams) apply(q *bun.SelectQuery) *bun.SelectQuery {
	if !p.IncludeDeleted {
		q = q.Where("s.deleted_at IS NULL")
	}
	if p.District != "" {
		q = q.Where("s.address_district = ?", p.District)
	}
	if p.Q != "" {
		pattern := "%" + escapeLike(p.Q) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("s.code ILIKE ?", pattern).
				WhereOr("s.name_first ILIKE ?", pattern).
				WhereOr("s.name_middle ILIKE ?", pattern).
				WhereOr("s.name_last ILIKE ?", pattern).
				WhereOr("s.address_city ILIKE ?", pattern)
		})
	}
	return q
}

func (p ListParams) order() string {
	if p.Sort == SortCreatedAtAsc {
		return "s.created_at ASC"
	}
	return "s.created_at DESC"
}

func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// escapeLike makes v safe as a literal inside a LIKE pattern.
func escapeLike(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `%`, `\%`)
	v = strings.ReplaceAll(v, `_`, `\_`)
	return v
}

// TotalPages is 0 when total is 0, else ceil(total/limit).
func TotalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
