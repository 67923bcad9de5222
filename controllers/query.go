package controllers

import (
	"gorm.io/gorm"
)

const maxPageSize = 100

// ListQuery is the explicit pagination/sorting criteria shared by list
// endpoints. Each controller whitelists its own sortable columns before the
// query reaches the storage layer.
type ListQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy,default=created_at"`
	SortOrder string `form:"sortOrder,default=desc"`
}

// Normalize clamps pagination and sort direction to safe values and maps
// SortBy through the given column whitelist.
func (q *ListQuery) Normalize(sortable map[string]string) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if column, ok := sortable[q.SortBy]; ok {
		q.SortBy = column
	} else {
		q.SortBy = "created_at"
	}
}

// Apply adds pagination and ordering to the query. Normalize must have been
// called first.
func (q *ListQuery) Apply(db *gorm.DB) *gorm.DB {
	offset := (q.Page - 1) * q.Limit
	return db.Order(q.SortBy + " " + q.SortOrder).Offset(offset).Limit(q.Limit)
}

// PageMeta describes the pagination of a list response
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

func newPageMeta(total int64, q ListQuery) PageMeta {
	totalPages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		totalPages++
	}
	return PageMeta{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}
}
