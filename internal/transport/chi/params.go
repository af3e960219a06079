package chi

import (
	"net/http"
	"strconv"

	"github.com/hansardlab/gavel/internal/domain/listing"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
)

// listingParams binds the uniform listing parameters from the query string.
// Bad input never fails a request: unparseable numbers and unknown sort
// modes are clamped or replaced with the listing default.
func listingParams(r *http.Request, def sort.Mode, defSize, maxSize int) listing.Params {
	q := r.URL.Query()

	page := atoiOrZero(q.Get("page"))
	pageSize := atoiOrZero(q.Get("page_size"))

	return listing.NewParams(
		q.Get("search"),
		sort.Mode(q.Get("sort")), def,
		page, pageSize, defSize, maxSize,
	)
}

// detailParams binds the parameters of a detail view: the shared text query
// and sort mode, no pagination.
func detailParams(r *http.Request, def sort.Mode) listing.Params {
	q := r.URL.Query()
	return listing.NewParams(q.Get("search"), sort.Mode(q.Get("sort")), def, 1, 0, 0, 0)
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
