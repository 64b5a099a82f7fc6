// Package presets restores a saved grid state (filters and sort
// order) onto a column catalog.
package presets

import (
	"www.velocidex.com/golang/vgrid/types"
)

// The persisted state of a grid.
type GridState struct {
	Filters []types.Filter  `json:"filters"`
	Sorters []types.SortKey `json:"sorters"`
}

// ApplyFilterPresets returns a copy of the columns with the preset
// filters installed. Search terms previously declared on any column
// are cleared first so only the preset remains in effect. A preset
// without an operator keeps the column's existing operator.
func ApplyFilterPresets(
	columns []types.Column, filters []types.Filter) []types.Column {
	result := make([]types.Column, len(columns))
	copy(result, columns)

	for i := range result {
		if result[i].Filter != nil {
			result[i].Filter = &types.ColumnFilter{
				Operator: result[i].Filter.Operator,
			}
		}
	}

	for _, preset := range filters {
		for i := range result {
			column := &result[i]
			if column.Id != preset.ColumnId {
				continue
			}

			op := preset.Operator
			if op == types.OperatorNone && column.Filter != nil {
				op = column.Filter.Operator
			}

			column.Filter = &types.ColumnFilter{
				Operator:    op,
				SearchTerms: append([]types.Any{}, preset.SearchTerms...),
			}

			// Ids are unique so the first column is the
			// only one.
			break
		}
	}

	return result
}

// CurrentFilters collects the active filters declared on the columns.
func CurrentFilters(columns []types.Column) []types.Filter {
	result := []types.Filter{}
	for _, column := range columns {
		if column.Filter == nil {
			continue
		}

		filter := types.Filter{
			ColumnId:    column.Id,
			Operator:    column.Filter.Operator,
			SearchTerms: column.Filter.SearchTerms,
		}
		if filter.IsActive() {
			result = append(result, filter)
		}
	}
	return result
}

// ResolveSorters drops sort keys referring to columns which are not
// in the catalog.
func ResolveSorters(
	columns []types.Column, sorters []types.SortKey) []types.SortKey {
	index := types.IndexColumns(columns)

	result := []types.SortKey{}
	for _, sorter := range sorters {
		_, pres := index[sorter.ColumnId]
		if pres {
			result = append(result, sorter)
		}
	}
	return result
}

// Apply installs the state's filters on the columns and returns the
// resulting filters and the usable sort keys.
func (self *GridState) Apply(columns []types.Column) (
	[]types.Column, []types.Filter, []types.SortKey) {
	new_columns := ApplyFilterPresets(columns, self.Filters)
	return new_columns, CurrentFilters(new_columns),
		ResolveSorters(new_columns, self.Sorters)
}
