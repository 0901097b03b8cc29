// Package pagination implements the page/size query convention shared
// by every collection endpoint. Requests choose a page with `page` and
// `size`; responses wrap the items in an envelope that carries enough
// counters for a client to render pager controls without a second
// round trip.
package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage = 1
	DefaultSize = 5
)

// Params is the requested window. Values arrive from the query string
// unchecked; Offset and Limit clamp them so the store never sees a
// negative bound.
type Params struct {
	Page int
	Size int
}

// FromQuery reads `page` and `size`, keeping the defaults when a
// parameter is absent or not an integer.
func FromQuery(c echo.Context) Params {
	p := Params{Page: DefaultPage, Size: DefaultSize}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Page = n
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Size = n
		}
	}
	return p
}

// Offset is the number of rows to skip for this window.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Size <= 0 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// Limit is the number of rows to fetch for this window.
func (p Params) Limit() int {
	if p.Size < 0 {
		return 0
	}
	return p.Size
}

// Page is the response envelope for one window of a collection.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// New assembles the envelope. Items is never nil so an empty window
// marshals as [] rather than null.
func New[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.Size,
		TotalCount: total,
		TotalPages: TotalPages(total, p.Size),
	}
}

// TotalPages is ceil(total/size). A window of zero or negative size
// has no pages.
func TotalPages(total int64, size int) int64 {
	if size <= 0 || total <= 0 {
		return 0
	}
	s := int64(size)
	return (total + s - 1) / s
}
