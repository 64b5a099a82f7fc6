package filter_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/alecthomas/repr"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/vgrid/filter"
	"www.velocidex.com/golang/vgrid/scope"
	"www.velocidex.com/golang/vgrid/types"
)

func person(id int, first, last string, age types.Any, score types.Any,
	born string) *ordereddict.Dict {
	result := ordereddict.NewDict().
		Set("id", id).
		Set("firstName", first).
		Set("lastName", last)
	if age != nil {
		result.Set("age", age)
	}
	return result.Set("score", score).Set("born", born)
}

func makePeople() []types.Row {
	return []types.Row{
		person(1, "John", "Smith", 26, 4, "2001-05-01").
			Set("active", true).
			Set("address", ordereddict.NewDict().Set("zip", 123456)),
		person(2, "Jane", "Smith", 27, 5, "2003-01-01").
			Set("active", false).
			Set("address", ordereddict.NewDict().Set("zip", 222222)),
		person(3, "Barbara", "Doe", 31, 88, "1999-12-31").
			Set("active", true).
			Set("address", ordereddict.NewDict().Set("zip", 123456)),
		person(4, "Johnny", "Appleseed", nil, 87, "2002-07-04"),
		person(5, "Joe", "Bloggs", 19, 100.5, "2001-01-01").
			Set("address", ordereddict.NewDict().Set("zip", 654321)),
	}
}

var peopleColumns = []types.Column{
	{Id: "id", Field: "id", Type: types.FieldTypeNumber},
	{Id: "firstName", Field: "firstName", Type: types.FieldTypeString},
	{Id: "lastName", Field: "lastName", Type: types.FieldTypeString},
	{Id: "age", Field: "age", Type: types.FieldTypeNumber},
	{Id: "score", Field: "score", Type: types.FieldTypeNumber},
	{Id: "born", Field: "born", Type: types.FieldTypeDate},
	{Id: "active", Field: "active", Type: types.FieldTypeBoolean},
	{Id: "zip", Field: "address.zip", Type: types.FieldTypeNumber},
}

func f(column string, op types.Operator, terms ...types.Any) types.Filter {
	return types.Filter{ColumnId: column, Operator: op, SearchTerms: terms}
}

type filterTest struct {
	name    string
	filters []types.Filter
}

var filterTests = []filterTest{
	{"Empty filters", nil},
	{"Empty terms", []types.Filter{f("age", types.OperatorEQ)}},
	{"Empty string term", []types.Filter{f("firstName", types.OperatorEQ, "")}},
	{"Number column with string term", []types.Filter{
		f("age", types.OperatorEQ, "26")}},
	{"NE lets missing values through", []types.Filter{
		f("age", types.OperatorNE, 26)}},
	{"IN", []types.Filter{f("age", types.OperatorIN, 26, "27")}},
	{"NOT_IN", []types.Filter{f("lastName", types.OperatorNotIN, "Smith")}},
	{"GT", []types.Filter{f("age", types.OperatorGT, 26)}},
	{"LE with string term", []types.Filter{f("score", types.OperatorLE, "5")}},
	{"Prefix wildcard", []types.Filter{f("firstName", types.OperatorNone, "Jo*")}},
	{"Suffix wildcard", []types.Filter{f("firstName", types.OperatorNone, "*hn")}},
	{"Two dot range is exclusive", []types.Filter{
		f("score", types.OperatorNone, "4..88")}},
	{"Two dot range inclusive", []types.Filter{
		f("score", types.OperatorRangeInclusive, "4..88")}},
	{"Two terms with range operator", []types.Filter{
		f("score", types.OperatorRangeExclusive, 4, 88)}},
	{"Two terms without range operator", []types.Filter{
		f("score", types.OperatorEQ, 4, 88)}},
	{"Date range inclusive", []types.Filter{
		f("born", types.OperatorRangeInclusive, "2001-01-01", "2003-01-01")}},
	{"Open range", []types.Filter{f("age", types.OperatorNone, "30..")}},
	{"Inline operator", []types.Filter{f("age", types.OperatorNone, ">=27")}},
	{"Nested path", []types.Filter{f("zip", types.OperatorEQ, 123456)}},
	{"Boolean", []types.Filter{f("active", types.OperatorEQ, "true")}},
	{"Unknown column", []types.Filter{f("nope", types.OperatorEQ, "x")}},
	{"Unknown operator", []types.Filter{f("lastName", types.Operator(99), "Doe")}},
	{"Multiple filters", []types.Filter{
		f("lastName", types.OperatorEQ, "Smith"),
		f("age", types.OperatorGE, 27)}},
	{"Contains", []types.Filter{f("lastName", types.OperatorContains, "ith")}},
	{"Starts with", []types.Filter{f("lastName", types.OperatorStartsWith, "Sm")}},
	{"Ends with strips wildcard", []types.Filter{
		f("lastName", types.OperatorEndsWith, "*oe")}},
}

func ids(rows []types.Row) []types.Any {
	result := []types.Any{}
	for _, row := range rows {
		id, _ := row.(*ordereddict.Dict).Get("id")
		result = append(result, id)
	}
	return result
}

func TestFilterCases(t *testing.T) {
	engine := filter.NewEngine(scope.NewScope())
	result := ordereddict.NewDict()

	for i, test := range filterTests {
		rows := engine.FilterRows(makePeople(), test.filters, peopleColumns)
		result.Set(fmt.Sprintf("%03d %s", i, test.name), ids(rows))
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("fixtures"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
	g.AssertJson(t, "TestFilterCases", result)
}

func TestMatchesWithoutConstraints(t *testing.T) {
	engine := filter.NewEngine(scope.NewScope())
	for _, row := range makePeople() {
		assert.True(t, engine.Matches(row, nil, peopleColumns))
		assert.True(t, engine.Matches(row, []types.Filter{
			f("age", types.OperatorEQ)}, peopleColumns))
	}
}

// Without a column catalog nothing can be filtered.
func TestEmptyCatalogFailsOpen(t *testing.T) {
	engine := filter.NewEngine(scope.NewScope())
	filters := []types.Filter{f("lastName", types.OperatorEQ, "nobody")}

	rows := engine.FilterRows(makePeople(), filters, nil)
	assert.Equal(t, 5, len(rows))
}

func TestFilterIsIdempotent(t *testing.T) {
	engine := filter.NewEngine(scope.NewScope())
	for _, test := range filterTests {
		once := engine.FilterRows(makePeople(), test.filters, peopleColumns)
		twice := engine.FilterRows(once, test.filters, peopleColumns)
		assert.Equal(t, ids(once), ids(twice), test.name)
	}
}

func TestTwoDotRangeBoundaries(t *testing.T) {
	engine := filter.NewEngine(scope.NewScope())
	columns := []types.Column{{Id: "n", Field: "n", Type: types.FieldTypeNumber}}
	filters := []types.Filter{f("n", types.OperatorNone, "4..88")}

	for i := 0; i < 100; i++ {
		row := ordereddict.NewDict().Set("n", i)
		expected := i > 4 && i < 88
		assert.Equal(t, expected, engine.Matches(row, filters, columns),
			"value %v", i)
	}
}

func TestFilterStructRows(t *testing.T) {
	type Address struct {
		Zip int `json:"zip"`
	}

	type Person struct {
		Name    string
		Address *Address
	}

	rows := []types.Row{
		Person{Name: "John", Address: &Address{Zip: 123456}},
		&Person{Name: "Jane", Address: &Address{Zip: 1}},
		Person{Name: "Nobody"},
	}
	columns := []types.Column{
		{Id: "name", Field: "Name"},
		{Id: "zip", Field: "Address.zip"},
	}

	engine := filter.NewEngine(scope.NewScope())
	result := engine.FilterRows(rows, []types.Filter{
		f("zip", types.OperatorEQ, "123456")}, columns)
	require.Equal(t, 1, len(result), repr.String(result))
	assert.Equal(t, "John", result[0].(Person).Name)

	result = engine.FilterRows(rows, []types.Filter{
		f("name", types.OperatorNone, "J*")}, columns)
	assert.Equal(t, 2, len(result))
}

func TestAccessor(t *testing.T) {
	columns := []types.Column{{
		Id:   "full",
		Type: types.FieldTypeString,
		Accessor: func(row types.Row) types.Any {
			dict := row.(*ordereddict.Dict)
			first, _ := dict.Get("firstName")
			last, _ := dict.Get("lastName")
			return fmt.Sprintf("%v %v", first, last)
		},
	}}

	engine := filter.NewEngine(scope.NewScope())
	result := engine.FilterRows(makePeople(), []types.Filter{
		f("full", types.OperatorEQ, "Jane Smith")}, columns)
	assert.Equal(t, []types.Any{2}, ids(result))
}

func TestPaddingRowsUseParent(t *testing.T) {
	parent := ordereddict.NewDict().Set("id", 1).Set("lastName", "Smith")
	padding := ordereddict.NewDict().
		Set("id", 2).
		Set("__isPadding", true).
		Set("__parent", parent)

	columns := []types.Column{{Id: "lastName", Field: "lastName"}}
	filters := []types.Filter{f("lastName", types.OperatorEQ, "Smith")}

	engine := filter.NewEngine(scope.NewScope())
	assert.True(t, engine.Matches(padding, filters, columns))

	// A custom prefix replaces the default one.
	env := scope.NewScope()
	env.SetConfig(types.Config{RowDetailKeyPrefix: "_x_"})
	engine = filter.NewEngine(env)
	assert.False(t, engine.Matches(padding, filters, columns))

	custom := ordereddict.NewDict().
		Set("_x_isPadding", true).
		Set("_x_parent", parent)
	assert.True(t, engine.Matches(custom, filters, columns))
}

func TestFilterChan(t *testing.T) {
	ctx := context.Background()
	engine := filter.NewEngine(scope.NewScope())

	input := make(chan types.Row)
	go func() {
		defer close(input)
		for _, row := range makePeople() {
			input <- row
		}
	}()

	result := []types.Row{}
	for row := range engine.FilterChan(ctx, input, []types.Filter{
		f("lastName", types.OperatorEQ, "Smith")}, peopleColumns) {
		result = append(result, row)
	}
	assert.Equal(t, []types.Any{1, 2}, ids(result))
}

func TestParallelFilterRows(t *testing.T) {
	rows := []types.Row{}
	for i := 0; i < 10000; i++ {
		rows = append(rows, ordereddict.NewDict().
			Set("id", i).
			Set("n", i%100))
	}
	columns := []types.Column{
		{Id: "id", Field: "id", Type: types.FieldTypeNumber},
		{Id: "n", Field: "n", Type: types.FieldTypeNumber},
	}
	filters := []types.Filter{f("n", types.OperatorIN, 3, 42)}

	engine := filter.NewEngine(scope.NewScope())
	expected := engine.FilterRows(rows, filters, columns)
	assert.Equal(t, 200, len(expected))

	result, err := engine.ParallelFilterRows(
		context.Background(), rows, filters, columns, 4)
	require.NoError(t, err)
	assert.Equal(t, ids(expected), ids(result))
}

func TestParallelFilterRowsPanic(t *testing.T) {
	rows := []types.Row{}
	for i := 0; i < 3000; i++ {
		rows = append(rows, ordereddict.NewDict().Set("id", i))
	}

	columns := []types.Column{{
		Id:   "id",
		Type: types.FieldTypeNumber,
		Accessor: func(row types.Row) types.Any {
			id, _ := row.(*ordereddict.Dict).Get("id")
			if id == 1500 {
				panic("boom")
			}
			return id
		},
	}}
	filters := []types.Filter{f("id", types.OperatorGE, 0)}

	engine := filter.NewEngine(scope.NewScope())

	// The serial filter lets the panic through.
	assert.PanicsWithValue(t, "boom", func() {
		engine.FilterRows(rows, filters, columns)
	})

	for _, workers := range []int{1, 4} {
		result, err := engine.ParallelFilterRows(
			context.Background(), rows, filters, columns, workers)
		assert.Error(t, err, "workers %v", workers)
		assert.Contains(t, err.Error(), "boom")
		assert.Nil(t, result)
	}

	// Small inputs take the serial path but still report an error.
	result, err := engine.ParallelFilterRows(
		context.Background(), rows[1490:1510], filters, columns, 4)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestStats(t *testing.T) {
	env := scope.NewScope()
	engine := filter.NewEngine(env)
	engine.FilterRows(makePeople(), []types.Filter{
		f("lastName", types.OperatorEQ, "Smith")}, peopleColumns)

	stats := env.GetStats().Snapshot()
	scanned, _ := stats.Get("RowsScanned")
	matched, _ := stats.Get("RowsMatched")
	assert.Equal(t, uint64(5), scanned)
	assert.Equal(t, uint64(2), matched)
}
