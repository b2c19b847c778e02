package query

import (
	"sort"

	"github.com/bennent-g/websnap/internal/history"
)

// Sort orders for Options.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Options controls sorting and pagination.
// Zero values take the defaults: page 1, page size 10, sorted by
// timestamp descending.
type Options struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = 10
	}
	if o.SortBy == "" {
		o.SortBy = "timestamp"
	}
	if o.SortOrder == "" {
		o.SortOrder = SortDesc
	}
	return o
}

// Result is one page of records plus pagination metadata.
type Result struct {
	Records     []history.Record `json:"records"`
	Total       int              `json:"total"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	PageSize    int              `json:"pageSize"`
}

// Paginate sorts a copy of records by opts.SortBy and slices out the
// requested page.
//
// The sort is stable: records with equal sort keys keep their relative
// capture order. A page beyond the last yields an empty record slice with
// valid metadata. TotalPages is ceil(total/pageSize); an empty input has
// zero pages.
func Paginate(records []history.Record, opts Options) Result {
	opts = opts.withDefaults()

	sorted := make([]history.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := project(sorted[i], opts.SortBy)
		b := project(sorted[j], opts.SortBy)
		if opts.SortOrder == SortAsc {
			return less(a, b)
		}
		return less(b, a)
	})

	total := len(sorted)
	totalPages := (total + opts.PageSize - 1) / opts.PageSize

	start := (opts.Page - 1) * opts.PageSize
	end := start + opts.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]history.Record, end-start)
	copy(page, sorted[start:end])

	return Result{
		Records:     page,
		Total:       total,
		CurrentPage: opts.Page,
		TotalPages:  totalPages,
		PageSize:    opts.PageSize,
	}
}

// FilterAndPaginate filters first, then paginates the survivors.
// Pagination metadata reflects the filtered total, not the input size.
func FilterAndPaginate(records []history.Record, filters Filters, opts Options) Result {
	return Paginate(Apply(records, filters), opts)
}

// less compares two projected field values of the same field.
func less(a, b fieldValue) bool {
	if a.numeric && b.numeric {
		return a.num < b.num
	}
	return a.str < b.str
}
