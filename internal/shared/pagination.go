package shared

import (
	"net/http"
	"strconv"
)

// PageParams holds the page/limit query parameters of a list request.
type PageParams struct {
	Page  int
	Limit int
}

// Offset converts the page parameters into a SQL offset.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams reads ?page and ?limit, clamping to sane bounds.
func ParsePageParams(r *http.Request) PageParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	return PageParams{Page: page, Limit: limit}
}
