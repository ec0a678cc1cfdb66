// Package query normalizes untrusted list parameters into a safe page
// request and shapes store results into uniform page metadata.
package query

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// sortColumns is the allow-list of client-facing sort fields and the store
// columns they resolve to. Anything else falls back to createdAt.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

type PageRequest struct {
	Page      int
	Limit     int
	SortField string
	Direction Direction
}

// Normalize builds a PageRequest from raw query-string values. Malformed
// page/limit values silently become defaults; out-of-range values are
// clamped, never rejected. Endpoints that reject oversized limits instead
// must check the raw value before calling this.
func Normalize(rawPage, rawLimit, sortBy, sortType string) PageRequest {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(rawLimit)
	if err != nil {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	field, ok := sortColumns[sortBy]
	if !ok {
		field = sortColumns["createdAt"]
	}

	dir := Descending
	if strings.EqualFold(sortType, "asc") || sortType == "1" {
		dir = Ascending
	}

	return PageRequest{Page: page, Limit: limit, SortField: field, Direction: dir}
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// OrderBy renders the normalized sort as SQL order expressions, always
// appending the ascending id tie-break so pagination stays deterministic
// when the primary sort key has duplicate values. prefix qualifies the
// columns with a table alias and may be empty.
func (r PageRequest) OrderBy(prefix string) []string {
	dir := "DESC"
	if r.Direction == Ascending {
		dir = "ASC"
	}
	return []string{prefix + r.SortField + " " + dir, prefix + "id ASC"}
}

type Page[T any] struct {
	Items       []T
	Page        int
	Limit       int
	TotalDocs   int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
}

// NewPage derives the page metadata from a count and the request. TotalPages
// is never below 1 so an empty result set still renders well-formed
// pagination fields.
func NewPage[T any](items []T, req PageRequest, totalDocs int) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := (totalDocs + req.Limit - 1) / req.Limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Page[T]{
		Items:       items,
		Page:        req.Page,
		Limit:       req.Limit,
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		HasPrevPage: req.Page > 1,
		HasNextPage: req.Page < totalPages,
	}
}
