package api

import (
	"net/http"
	"strconv"

	"github.com/jessebautista/wpnew-sub000/internal/listing"
)

// pageParams reads ?page= and ?per_page=, falling back to the listing
// defaults. Out-of-range values are clamped by listing.Paginate.
func pageParams(r *http.Request) (page, perPage int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = listing.DefaultPerPage
	}
	return page, perPage
}
