package models

import (
	"math"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps Offset within int for any page size up to MaxPageSize.
	MaxPage = math.MaxInt / MaxPageSize
)

// EntryFilter narrows a listing. Dates are inclusive; Search is a
// case-insensitive substring of the activity name.
type EntryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Page      int
	PageSize  int
}

// Normalized clamps paging values into range.
func (f EntryFilter) Normalized() EntryFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

func (f EntryFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// EntryPage is one page of a filtered listing.
type EntryPage struct {
	Rows       []Entry `json:"rows"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
