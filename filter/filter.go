// Package filter decides which rows satisfy a set of column filters.
//
// Filters on different columns are combined with AND. Each filter is
// reduced to a single operator dispatched through a lookup table, so
// callers may pass operators, inline operators (">=26"), wildcards
// ("Jo*") and two dot ranges ("4..88") interchangeably.
package filter

import (
	"context"

	"www.velocidex.com/golang/vgrid/fields"
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

type boundCondition struct {
	column     *types.Column
	field_type types.FieldType
	condition  condition
}

// The filter as it is actually applied.
func (self boundCondition) effective() types.Filter {
	return types.Filter{
		ColumnId:    self.column.Id,
		Operator:    self.condition.operator,
		SearchTerms: self.condition.terms,
	}
}

// A plan holds the filters which actually constrain rows. A plan
// without conditions accepts every row.
type plan struct {
	conditions []boundCondition
	explainer  types.Explainer
}

func (self *Engine) prepare(filters []types.Filter, columns []types.Column) plan {
	result := plan{explainer: self.env.GetExplainer()}

	// No column catalog means no filtering capability at all.
	if len(columns) == 0 || len(filters) == 0 {
		result.explain()
		return result
	}

	index := types.IndexColumns(columns)
	for _, filter := range filters {
		column, pres := index[filter.ColumnId]
		if !pres {
			self.env.Trace("filter: column %v not found, ignoring filter",
				filter.ColumnId)
			continue
		}

		cond, ok := compile(self.env, filter)
		if !ok {
			continue
		}

		result.conditions = append(result.conditions, boundCondition{
			column:     column,
			field_type: column.FilterType(),
			condition:  cond,
		})
	}

	result.explain()
	return result
}

func (self plan) explain() {
	if self.explainer == nil {
		return
	}

	filters := make([]types.Filter, 0, len(self.conditions))
	for _, item := range self.conditions {
		filters = append(filters, item.effective())
	}
	self.explainer.StartFilter(filters)
}

func (self *Engine) evaluate(p plan, row types.Row) bool {
	self.env.GetStats().IncRowsScanned()

	for _, item := range p.conditions {
		value := self.resolver.FilterValue(row, item.column)
		op := item.condition.operator
		if types.IsNil(value) {
			if nullSatisfies(op) {
				continue
			}
			p.reject(row, item, value)
			return false
		}

		if !operatorTable[op](self.env, item.field_type,
			value, item.condition.terms) {
			p.reject(row, item, value)
			return false
		}
	}

	self.env.GetStats().IncRowsMatched()
	if p.explainer != nil {
		p.explainer.AcceptRow(row)
	}
	return true
}

func (self plan) reject(row types.Row, item boundCondition, value types.Any) {
	if self.explainer != nil {
		self.explainer.RejectRow(row, item.effective(), value)
	}
}

// Matches returns true when the row satisfies every filter.
func (self *Engine) Matches(
	row types.Row, filters []types.Filter, columns []types.Column) bool {
	return self.evaluate(self.prepare(filters, columns), row)
}

// FilterRows returns the rows which match, in their original order.
// The input slice is not modified.
func (self *Engine) FilterRows(rows []types.Row,
	filters []types.Filter, columns []types.Column) []types.Row {
	p := self.prepare(filters, columns)

	result := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		if self.evaluate(p, row) {
			result = append(result, row)
		}
	}
	return result
}

// FilterChan filters a stream of rows. The output channel is closed
// when the input is exhausted or the context is done.
func (self *Engine) FilterChan(ctx context.Context, input <-chan types.Row,
	filters []types.Filter, columns []types.Column) <-chan types.Row {
	output_chan := make(chan types.Row)
	p := self.prepare(filters, columns)

	go func() {
		defer close(output_chan)

		for {
			select {
			case <-ctx.Done():
				return

			case row, ok := <-input:
				if !ok {
					return
				}

				if !self.evaluate(p, row) {
					continue
				}

				select {
				case <-ctx.Done():
					return
				case output_chan <- row:
				}
			}
		}
	}()

	return output_chan
}
