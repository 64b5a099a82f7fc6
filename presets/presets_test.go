package presets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vgrid/types"
)

const columnsJSON = `[
  {"id": "firstName", "name": "First Name", "type": "string"},
  {"id": "age", "field": "age", "type": "number",
   "filter": {"operator": ">=", "searchTerms": [18]}},
  {"id": "zip", "field": "address.zip", "filterSearchType": "string"},
  {"id": "owner", "queryFieldSorter": "owner.name", "dataKey": "first"},
  {"id": "born", "type": "dateIso", "filter": {"operator": "bogus"}}
]`

func TestColumnsFromJSON(t *testing.T) {
	columns, err := ColumnsFromJSON(strings.NewReader(columnsJSON))
	require.NoError(t, err)
	require.Equal(t, 5, len(columns))

	assert.Equal(t, types.Column{
		Id: "firstName", Field: "firstName", Type: types.FieldTypeString,
	}, columns[0])

	assert.Equal(t, types.FieldTypeNumber, columns[1].Type)
	assert.Equal(t, &types.ColumnFilter{
		Operator:    types.OperatorGE,
		SearchTerms: []types.Any{uint64(18)},
	}, columns[1].Filter)

	assert.Equal(t, "address.zip", columns[2].Field)
	assert.Equal(t, types.FieldTypeString, columns[2].FilterType())

	assert.Equal(t, "owner.name.first", columns[3].SortPath())

	// Unknown operators become EQ.
	assert.Equal(t, types.FieldTypeDate, columns[4].Type)
	assert.Equal(t, types.OperatorEQ, columns[4].Filter.Operator)
}

func TestColumnsFromJSONErrors(t *testing.T) {
	for _, data := range []string{
		`{"id": "x"}`,
		`[1]`,
		`[{"name": "no id"}]`,
		`[{"id": "x", "sortable": true}]`,
		`[{"id": "x", "filter": 1}]`,
		`[{"id": "x"}`,
	} {
		_, err := ColumnsFromJSON(strings.NewReader(data))
		assert.Error(t, err, data)
	}
}

const stateJSON = `{
  "filters": [
    {"columnId": "firstName", "searchTerms": ["Jo*"]},
    {"columnId": "born", "operator": "RangeInclusive",
     "searchTerms": ["2001-01-01", "2002-12-31"]},
    {"columnId": "missing", "operator": "EQ", "searchTerms": ["x"]}
  ],
  "sorters": [
    {"columnId": "age", "direction": "desc"},
    {"columnId": "missing"},
    {"columnId": "firstName", "direction": "ASC"}
  ]
}`

func TestStateFromJSON(t *testing.T) {
	state, err := StateFromJSON(strings.NewReader(stateJSON))
	require.NoError(t, err)

	assert.Equal(t, []types.Filter{
		{"firstName", types.OperatorNone, []types.Any{"Jo*"}},
		{"born", types.OperatorRangeInclusive,
			[]types.Any{"2001-01-01", "2002-12-31"}},
		{"missing", types.OperatorEQ, []types.Any{"x"}},
	}, state.Filters)

	assert.Equal(t, []types.SortKey{
		{"age", types.DESC},
		{"missing", types.ASC},
		{"firstName", types.ASC},
	}, state.Sorters)

	_, err = StateFromJSON(strings.NewReader(`[]`))
	assert.Error(t, err)

	_, err = StateFromJSON(strings.NewReader(`{"filters": [{"operator": "EQ"}]}`))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	columns, err := ColumnsFromJSON(strings.NewReader(columnsJSON))
	require.NoError(t, err)

	state, err := StateFromJSON(strings.NewReader(stateJSON))
	require.NoError(t, err)

	new_columns, filters, keys := state.Apply(columns)

	// The age column's declared terms are cleared by the preset.
	assert.Equal(t, []types.Filter{
		{"firstName", types.OperatorNone, []types.Any{"Jo*"}},
		{"born", types.OperatorRangeInclusive,
			[]types.Any{"2001-01-01", "2002-12-31"}},
	}, filters)
	assert.Equal(t, types.OperatorGE, new_columns[1].Filter.Operator)
	assert.Empty(t, new_columns[1].Filter.SearchTerms)

	assert.Equal(t, []types.SortKey{
		{"age", types.DESC},
		{"firstName", types.ASC},
	}, keys)

	// The input columns are not modified.
	assert.Equal(t, []types.Any{uint64(18)}, columns[1].Filter.SearchTerms)
	assert.Nil(t, columns[0].Filter)
}

func TestApplyFilterPresetsKeepsOperator(t *testing.T) {
	columns := []types.Column{{
		Id: "age",
		Filter: &types.ColumnFilter{
			Operator:    types.OperatorGT,
			SearchTerms: []types.Any{1},
		},
	}}

	result := ApplyFilterPresets(columns, []types.Filter{
		{ColumnId: "age", SearchTerms: []types.Any{30}},
	})
	assert.Equal(t, []types.Filter{
		{"age", types.OperatorGT, []types.Any{30}},
	}, CurrentFilters(result))

	result = ApplyFilterPresets(columns, []types.Filter{
		{ColumnId: "age", Operator: types.OperatorLT,
			SearchTerms: []types.Any{30}},
	})
	assert.Equal(t, types.OperatorLT, result[0].Filter.Operator)

	// No presets still clears the declared terms.
	result = ApplyFilterPresets(columns, nil)
	assert.Equal(t, []types.Filter{}, CurrentFilters(result))
	assert.Equal(t, types.OperatorGT, result[0].Filter.Operator)
}
