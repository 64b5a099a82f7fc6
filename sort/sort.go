// Package sort orders rows by a list of sort keys.
//
// Earlier keys take precedence, DESC reverses a key and rows which
// tie on every key keep their input order. Missing values sort last
// regardless of direction.
package sort

import (
	"context"
	"sort"

	"www.velocidex.com/golang/vgrid/fields"
	"www.velocidex.com/golang/vgrid/protocols"
	"www.velocidex.com/golang/vgrid/types"
)

type Engine struct {
	env      types.Environment
	resolver *fields.Resolver
}

func NewEngine(env types.Environment) *Engine {
	return &Engine{
		env:      env,
		resolver: fields.NewResolver(env),
	}
}

type boundKey struct {
	column *types.Column
	desc   bool
}

// Keys referring to unknown columns are skipped so a stale sort
// state does not break sorting.
func (self *Engine) prepare(
	keys []types.SortKey, columns []types.Column) []boundKey {
	index := types.IndexColumns(columns)

	result := make([]boundKey, 0, len(keys))
	for _, key := range keys {
		column, pres := index[key.ColumnId]
		if !pres {
			self.env.Trace("sort: column %v not found, skipping sort key",
				key.ColumnId)
			continue
		}
		result = append(result, boundKey{
			column: column,
			desc:   key.Direction == types.DESC,
		})
	}
	return result
}

func (self *Engine) explain(keys []boundKey) {
	explainer := self.env.GetExplainer()
	if explainer == nil {
		return
	}

	effective := make([]types.SortKey, 0, len(keys))
	for _, key := range keys {
		direction := types.ASC
		if key.desc {
			direction = types.DESC
		}
		effective = append(effective, types.SortKey{
			ColumnId:  key.column.Id,
			Direction: direction,
		})
	}
	explainer.StartSort(effective)
}

// Compare returns -1, 0 or 1 as row a sorts before, with or after
// row b.
func (self *Engine) Compare(keys []types.SortKey,
	a types.Row, b types.Row, columns []types.Column) int {
	for _, key := range self.prepare(keys, columns) {
		c := self.compareValues(key,
			self.resolver.SortValue(a, key.column),
			self.resolver.SortValue(b, key.column))
		if c != 0 {
			return c
		}
	}
	return 0
}

func (self *Engine) compareValues(key boundKey, a, b types.Any) int {
	self.env.GetStats().IncComparisons()

	a_nil, b_nil := types.IsNil(a), types.IsNil(b)
	switch {
	case a_nil && b_nil:
		return 0
	case a_nil:
		return 1
	case b_nil:
		return -1
	}

	var c int
	if key.column.Comparer != nil {
		c = key.column.Comparer(a, b)
	} else {
		c = protocols.Compare(self.env, key.column.Type, a, b)
	}

	switch {
	case c < 0:
		c = -1
	case c > 0:
		c = 1
	}

	if key.desc {
		return -c
	}
	return c
}

// SortRows returns a new slice holding the rows in sorted order. The
// input slice is not modified.
func (self *Engine) SortRows(rows []types.Row,
	keys []types.SortKey, columns []types.Column) []types.Row {
	result := append([]types.Row{}, rows...)

	ctx := self.newSortCtx(result, keys, columns)
	sort.Stable(ctx)

	return ctx.Items
}

// Values are resolved once per row and key rather than on every
// comparison.
type sortCtx struct {
	engine *Engine
	keys   []boundKey
	Items  []types.Row
	values [][]types.Any
}

func (self *Engine) newSortCtx(rows []types.Row,
	keys []types.SortKey, columns []types.Column) *sortCtx {
	bound := self.prepare(keys, columns)
	self.explain(bound)

	values := make([][]types.Any, len(rows))
	for i, row := range rows {
		values[i] = make([]types.Any, len(bound))
		for j, key := range bound {
			values[i][j] = self.resolver.SortValue(row, key.column)
		}
	}

	return &sortCtx{
		engine: self,
		keys:   bound,
		Items:  rows,
		values: values,
	}
}

func (self *sortCtx) Len() int {
	return len(self.Items)
}

func (self *sortCtx) Less(i, j int) bool {
	for k, key := range self.keys {
		c := self.engine.compareValues(key, self.values[i][k], self.values[j][k])
		if c != 0 {
			return c < 0
		}
	}
	return false
}

func (self *sortCtx) Swap(i, j int) {
	self.Items[i], self.Items[j] = self.Items[j], self.Items[i]
	self.values[i], self.values[j] = self.values[j], self.values[i]
}

// The DefaultSorter implements sorting in memory.
type DefaultSorter struct{}

func (self DefaultSorter) Sort(ctx context.Context,
	env types.Environment,
	input <-chan types.Row,
	keys []types.SortKey,
	columns []types.Column) <-chan types.Row {

	output_chan := make(chan types.Row)
	engine := NewEngine(env)

	go func() {
		defer close(output_chan)

		rows := []types.Row{}
		for {
			select {
			case <-ctx.Done():
				return

			case row, ok := <-input:
				if !ok {
					// Sort ourselves and dump everything to
					// the output.
					for _, row := range engine.SortRows(rows, keys, columns) {
						select {
						case <-ctx.Done():
							return

						case output_chan <- row:
						}
					}
					return
				}

				// Collect all the rows
				rows = append(rows, row)
			}
		}
	}()
	return output_chan
}
