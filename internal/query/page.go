package query

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"saledash/internal/core"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

var errNotPositive = errors.New("must be a positive integer")

// Page is a 1-based pagination window.
type Page struct {
	Number  int
	PerPage int
}

// DefaultPageWindow returns the first page with the default size.
func DefaultPageWindow() Page {
	return Page{Number: DefaultPage, PerPage: DefaultPerPage}
}

// ParsePage reads page and perPage parameters. Missing values take their
// defaults silently; unusable values also take their defaults, and are
// reported in the returned error as *core.ValidationError values. The
// returned Page is always valid.
func ParsePage(page, perPage string) (Page, error) {
	p := DefaultPageWindow()
	var errs []error
	if n, err := parsePositive("page", page); err != nil {
		errs = append(errs, err)
	} else if n > 0 {
		p.Number = n
	}
	if n, err := parsePositive("perPage", perPage); err != nil {
		errs = append(errs, err)
	} else if n > 0 {
		p.PerPage = n
	}
	return p, errors.Join(errs...)
}

// parsePositive returns 0 with no error for an empty value.
func parsePositive(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &core.ValidationError{Field: field, Value: raw, Err: err}
	}
	if n < 1 {
		return 0, &core.ValidationError{Field: field, Value: raw, Err: errNotPositive}
	}
	return n, nil
}

// Offset is the number of matching records skipped before this page.
// It saturates at math.MaxInt instead of overflowing.
func (p Page) Offset() int {
	if p.PerPage > 0 && p.Number-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Number - 1) * p.PerPage
}

// Limit is the maximum number of records on this page.
func (p Page) Limit() int {
	return p.PerPage
}
