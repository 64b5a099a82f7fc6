/*
Package vgrid filters and sorts the rows of a data grid.

A grid is described by a column catalog (types.Column) which says
where each column's value lives inside a row and what type it has.
Rows are schema-less records, usually *ordereddict.Dict, maps or
structs.

	grid := vgrid.NewGrid()
	rows = grid.FilterRows(rows, []types.Filter{{
		ColumnId:    "age",
		Operator:    types.OperatorGE,
		SearchTerms: []types.Any{26},
	}}, columns)
	rows = grid.SortRows(rows, []types.SortKey{{ColumnId: "lastName"}}, columns)

Filters may also be written as text, see Query() and the parser
package.

Neither FilterRows nor SortRows fail on badly shaped data: unknown
columns are ignored, unknown operators compare for equality and
missing values never match a filter (except NE and NOT_IN) and sort
last in either direction.
*/
package vgrid

import (
	"context"
	"log"

	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/explain"
	"www.velocidex.com/golang/vgrid/filter"
	"www.velocidex.com/golang/vgrid/parser"
	"www.velocidex.com/golang/vgrid/scope"
	"www.velocidex.com/golang/vgrid/sort"
	"www.velocidex.com/golang/vgrid/types"
)

type Grid struct {
	*scope.Scope

	filter *filter.Engine
	sorter *sort.Engine

	// Sorts the streams produced by Stream()
	stream_sorter types.Sorter
}

type Option func(grid *Grid)

func WithConfig(config types.Config) Option {
	return func(grid *Grid) {
		grid.SetConfig(config)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(grid *Grid) {
		grid.SetLogger(logger)
	}
}

// The tracer receives very verbose messages explaining why filters
// were ignored or sort keys skipped.
func WithTracer(tracer *log.Logger) Option {
	return func(grid *Grid) {
		grid.SetTracer(tracer)
	}
}

// Log why every row was accepted or rejected and which sort keys
// were applied. Useful when a filter does not match what was
// expected.
func WithExplain() Option {
	return func(grid *Grid) {
		grid.SetExplainer(explain.NewLoggingExplainer(grid.Scope))
	}
}

// Add protocol implementations (see the protocols package) for
// custom row or cell types.
func WithProtocols(implementations ...types.Any) Option {
	return func(grid *Grid) {
		grid.AddProtocolImpl(implementations...)
	}
}

// Replace the in memory sorter used by Stream().
func WithSorter(sorter types.Sorter) Option {
	return func(grid *Grid) {
		grid.stream_sorter = sorter
	}
}

func NewGrid(options ...Option) *Grid {
	result := &Grid{
		Scope:         scope.NewScope(),
		stream_sorter: sort.DefaultSorter{},
	}
	for _, option := range options {
		option(result)
	}

	// Engines capture the scope so must be built last.
	result.filter = filter.NewEngine(result.Scope)
	result.sorter = sort.NewEngine(result.Scope)

	return result
}

// Matches returns true if the row satisfies all the filters.
func (self *Grid) Matches(
	row types.Row, filters []types.Filter, columns []types.Column) bool {
	return self.filter.Matches(row, filters, columns)
}

// FilterRows returns the rows which satisfy all the filters in their
// original order.
func (self *Grid) FilterRows(rows []types.Row,
	filters []types.Filter, columns []types.Column) []types.Row {
	return self.filter.FilterRows(rows, filters, columns)
}

// ParallelFilterRows is FilterRows using a pool of workers.
func (self *Grid) ParallelFilterRows(ctx context.Context, rows []types.Row,
	filters []types.Filter, columns []types.Column, workers int) ([]types.Row, error) {
	return self.filter.ParallelFilterRows(ctx, rows, filters, columns, workers)
}

// Compare returns -1, 0 or 1 as row a sorts before, with or after
// row b.
func (self *Grid) Compare(keys []types.SortKey,
	a types.Row, b types.Row, columns []types.Column) int {
	return self.sorter.Compare(keys, a, b, columns)
}

// SortRows returns a new, stably sorted slice of the rows.
func (self *Grid) SortRows(rows []types.Row,
	keys []types.SortKey, columns []types.Column) []types.Row {
	return self.sorter.SortRows(rows, keys, columns)
}

// Stream filters and then sorts a channel of rows. Sorting needs all
// the rows so nothing is emitted until the input is closed.
func (self *Grid) Stream(ctx context.Context, input <-chan types.Row,
	filters []types.Filter, keys []types.SortKey,
	columns []types.Column) <-chan types.Row {
	filtered := self.filter.FilterChan(ctx, input, filters, columns)
	if len(keys) == 0 {
		return filtered
	}
	return self.stream_sorter.Sort(ctx, self.Scope, filtered, keys, columns)
}

// Query parses the filter and sort expressions, then filters and
// sorts the rows. Either expression may be empty.
func (self *Grid) Query(rows []types.Row, columns []types.Column,
	filter_expr string, sort_expr string) ([]types.Row, error) {
	filters, err := parser.ParseFilters(filter_expr)
	if err != nil {
		return nil, errors.Wrap(err, "Query filter")
	}

	keys, err := parser.ParseSortKeys(sort_expr)
	if err != nil {
		return nil, errors.Wrap(err, "Query sort")
	}

	result := self.FilterRows(rows, filters, columns)
	if len(keys) > 0 {
		result = self.SortRows(result, keys, columns)
	}
	return result, nil
}

var defaultGrid = NewGrid()

// FilterRows filters rows using a grid with the default
// configuration.
func FilterRows(rows []types.Row,
	filters []types.Filter, columns []types.Column) []types.Row {
	return defaultGrid.FilterRows(rows, filters, columns)
}

// SortRows sorts rows using a grid with the default configuration.
func SortRows(rows []types.Row,
	keys []types.SortKey, columns []types.Column) []types.Row {
	return defaultGrid.SortRows(rows, keys, columns)
}
