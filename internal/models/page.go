package models

import "go.mongodb.org/mongo-driver/bson"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageOptions is a skip/limit window. Limits are clamped server-side to
// bound the work a single request can cause.
type PageOptions struct {
	Skip  int
	Limit int
}

// Normalize clamps skip to >= 0 and limit to [1, MaxPageSize], applying
// the default page size when limit is unset.
func (p PageOptions) Normalize() PageOptions {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// PageFromQuery derives a window from 1-based page/limit parameters.
func PageFromQuery(page, limit int) PageOptions {
	if page < 1 {
		page = 1
	}
	opts := PageOptions{Limit: limit}.Normalize()
	opts.Skip = (page - 1) * opts.Limit
	return opts
}

// CurrentPage reports the 1-based page number of the window.
func (p PageOptions) CurrentPage() int {
	if p.Limit <= 0 {
		return 1
	}
	return (p.Skip / p.Limit) + 1
}

// SortOrder maps the sortBy flag to a Mongo sort direction on the
// primary date field: "oldest" ascending, anything else newest-first.
func SortOrder(sortBy string) int {
	if sortBy == "oldest" {
		return 1
	}
	return -1
}

// EventPage is one window of a filtered, joined result set. Total is
// counted over the whole filtered set before skip/limit is applied.
type EventPage struct {
	Total int64    `json:"total"`
	Skip  int      `json:"skip"`
	Limit int      `json:"limit"`
	Items []bson.M `json:"items"`
}

// HasMore reports whether another window exists past this one.
func (p EventPage) HasMore() bool {
	return int64(p.Skip+p.Limit) < p.Total
}

// NextSkip is always computable; callers must check HasMore first.
func (p EventPage) NextSkip() int {
	return p.Skip + p.Limit
}
