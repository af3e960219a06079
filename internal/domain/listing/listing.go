// Package listing holds the uniform parameter set every listing endpoint
// accepts and the paginated envelope they return.
package listing

import (
	"strings"

	"github.com/hansardlab/gavel/internal/domain/listing/sort"
)

// Pagination defaults shared by the flat listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params is a normalized set of listing parameters. Construction never
// fails: blank queries are treated as absent, unknown sort modes fall back
// to the listing default, and page numbers are clamped.
type Params struct {
	query    string
	sortMode sort.Mode
	page     int
	pageSize int
}

// NewParams normalizes raw request parameters. def is the listing's default
// sort mode, used when m is empty or unknown. defSize and maxSize of 0 use
// the package defaults.
func NewParams(query string, m, def sort.Mode, page, pageSize, defSize, maxSize int) Params {
	if defSize <= 0 {
		defSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}

	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}

	return Params{
		query:    query,
		sortMode: sort.Normalize(m, def, query != ""),
		page:     page,
		pageSize: pageSize,
	}
}

// Query returns the trimmed free-text query, empty when absent.
func (p Params) Query() string { return p.query }

// HasQuery reports whether a text query is present.
func (p Params) HasQuery() bool { return p.query != "" }

// Sort returns the normalized sort mode.
func (p Params) Sort() sort.Mode { return p.sortMode }

// Page returns the 1-based page number.
func (p Params) Page() int { return p.page }

// PageSize returns the clamped page size.
func (p Params) PageSize() int { return p.pageSize }

// Offset returns the row offset of the requested page.
func (p Params) Offset() int { return (p.page - 1) * p.pageSize }

// Page is one page of ranked results together with the totals the count
// query produced. A page past the end carries empty Items, not an error.
type Page[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
}

// NewPage builds a page envelope. TotalPages is ceil(total/pageSize).
func NewPage[T any](items []T, total, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(total/pageSize), 0 for an empty result set.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
