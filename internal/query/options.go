package query

import "strings"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc"/"desc" case-insensitively; anything else is
// rejected so callers can fall back to their default.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(s) {
	case string(SortAsc):
		return SortAsc, true
	case string(SortDesc):
		return SortDesc, true
	}
	return "", false
}

// Options holds pagination and sorting for list queries.
type Options struct {
	Page      int // 1-based
	Offset    int // page size
	SortBy    string
	SortOrder SortOrder
}

const (
	DefaultPage   = 1
	DefaultOffset = 100
)

var investmentColumns = map[string]struct{}{
	"id":           {},
	"amount":       {},
	"annual_rate":  {},
	"confirmed_at": {},
	"created_at":   {},
	"created_by":   {},
}

// IsInvestmentColumn reports whether name is a sortable investments column.
func IsInvestmentColumn(name string) bool {
	_, ok := investmentColumns[name]
	return ok
}

// Pagination is the envelope returned alongside list results.
type Pagination struct {
	Total      int `json:"total"`
	Offset     int `json:"offset"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}
