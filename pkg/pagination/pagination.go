// Copyright (c) 2026 Taskboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination turns ?page=&limit= into an offset window and describes
// the resulting page in list responses.
package pagination

import (
	"net/http"

	"github.com/taibuivan/taskboard/pkg/convert"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Normalize replaces a page below 1 with [DefaultPage], a limit below 1 with
// [DefaultLimit] and caps the limit at [MaxLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows preceding the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta accompanies every paginated response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta describes the page p of a result set holding total rows.
func NewMeta(p Params, total int) Meta {
	meta := Meta{Page: p.Page, Limit: p.Limit, Total: total}
	if p.Limit > 0 {
		meta.TotalPages = (total + p.Limit - 1) / p.Limit
	}
	return meta
}

// FromRequest reads page and limit from the query string. Unparseable values
// fall back to the defaults before normalization.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return Params{
		Page:  convert.ToIntD(query.Get("page"), DefaultPage),
		Limit: convert.ToIntD(query.Get("limit"), DefaultLimit),
	}.Normalize()
}
