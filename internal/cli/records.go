package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bennent-g/websnap/internal/history"
	"github.com/bennent-g/websnap/internal/query"
)

// RecordsOptions holds flags for the records command.
type RecordsOptions struct {
	*RootOptions
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string

	Elements []string // membership filter on the element field
	Kind     string   // exact filter on the type field
	Since    int64    // inclusive lower timestamp bound (unix millis)
	Until    int64    // inclusive upper timestamp bound (unix millis)
}

// NewRecordsCommand creates the records command.
func NewRecordsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "records <route>",
		Short: "Query one route's records with filters and pagination",
		Long: `Query the records stored for a route, filtered and paginated.

Filters are conjunctive: a record must satisfy every filter given.
Pagination defaults to page 1, 10 records per page, sorted by timestamp
descending; ties keep capture order.

Examples:
  websnap records --db ./websnap.db --user u1 "#/home"
  websnap records --db ./websnap.db --user u1 "#/home" --element username --element agree
  websnap records --db ./websnap.db --user u1 "#/home" --kind click --since 1700000000000
  websnap records --db ./websnap.db --user u1 "#/home" --page 2 --page-size 5 --sort-order asc`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecords(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 10, "records per page")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "timestamp", "sort field (element|value|timestamp|type)")
	cmd.Flags().StringVar(&opts.SortOrder, "sort-order", query.SortDesc, "sort order (asc|desc)")
	cmd.Flags().StringArrayVar(&opts.Elements, "element", nil, "keep records for these element ids (repeatable)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "keep records of this kind (form|click|browser)")
	cmd.Flags().Int64Var(&opts.Since, "since", 0, "keep records at or after this unix-millisecond timestamp")
	cmd.Flags().Int64Var(&opts.Until, "until", 0, "keep records at or before this unix-millisecond timestamp")

	return cmd
}

func runRecords(opts *RecordsOptions, cmd *cobra.Command, routePath string) error {
	ctx := context.Background()

	snap, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	key := history.Key(opts.User, routePath)
	result, err := snap.GetFilteredPaginatedRecords(ctx, key, buildFilters(opts), query.Options{
		Page:      opts.Page,
		PageSize:  opts.PageSize,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query records", err)
	}

	out := formatter(opts.RootOptions, cmd)
	var b strings.Builder
	b.WriteString(renderRecords(result.Records))
	fmt.Fprintf(&b, "page %d/%d (%d records total, page size %d)\n",
		result.CurrentPage, result.TotalPages, result.Total, result.PageSize)
	return out.SuccessText(b.String(), result)
}

// buildFilters translates flag values into query conditions.
// Unset flags contribute no condition (the absent-filter rule).
func buildFilters(opts *RecordsOptions) query.Filters {
	filters := query.Filters{}
	if len(opts.Elements) > 0 {
		filters["element"] = query.OneOf{Values: opts.Elements}
	}
	if opts.Kind != "" {
		filters["type"] = query.Equals{Value: opts.Kind}
	}
	if opts.Since > 0 || opts.Until > 0 {
		r := query.Range{}
		if opts.Since > 0 {
			since := opts.Since
			r.Min = &since
		}
		if opts.Until > 0 {
			until := opts.Until
			r.Max = &until
		}
		filters["timestamp"] = r
	}
	return filters
}
