// Package query turns request parameters into store-independent filters and
// pagination windows.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"saledash/internal/core"
)

// Filter selects transactions by sale month and free-text search.
//
// A zero Filter matches every record.
type Filter struct {
	// Month is the two-digit month token matched lexically inside
	// dateOfSale as "-MM-". Empty means no month condition.
	Month string

	// Search is matched case-insensitively as a substring of title or
	// description. Empty means no search condition.
	Search string

	// Price is the numeric reading of Search. Nil when Search does not parse
	// as a number, in which case the price branch never matches.
	Price *float64
}

// BuildFilter builds a Filter from raw month and search parameters.
func BuildFilter(month, search string) Filter {
	f := Filter{Month: NormalizeMonth(month)}
	search = strings.TrimSpace(search)
	if search == "" {
		return f
	}
	f.Search = search
	if p, err := strconv.ParseFloat(search, 64); err == nil && !math.IsNaN(p) && !math.IsInf(p, 0) {
		f.Price = &p
	}
	return f
}

// MonthFilter builds the month-only filter used by the aggregations.
func MonthFilter(month string) Filter {
	return BuildFilter(month, "")
}

// NormalizeMonth zero-pads numeric months 1-12 ("8" -> "08"). Anything else
// non-empty is returned trimmed and unchanged, so it keeps its lexical meaning.
func NormalizeMonth(month string) string {
	month = strings.TrimSpace(month)
	if month == "" {
		return ""
	}
	if m, err := strconv.Atoi(month); err == nil && m >= 1 && m <= 12 {
		return fmt.Sprintf("%02d", m)
	}
	return month
}

// MonthPattern is the substring a matching dateOfSale must contain, or "" when
// the filter has no month condition.
func (f Filter) MonthPattern() string {
	if f.Month == "" {
		return ""
	}
	return "-" + f.Month + "-"
}

// HasSearch reports whether the filter carries a search condition.
func (f Filter) HasSearch() bool {
	return f.Search != ""
}

// Matches is the reference evaluation of the filter against one record.
func (f Filter) Matches(t core.Transaction) bool {
	if p := f.MonthPattern(); p != "" && !strings.Contains(t.DateOfSale, p) {
		return false
	}
	if !f.HasSearch() {
		return true
	}
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	return f.Price != nil && t.Price == *f.Price
}
