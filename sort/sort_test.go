package sort_test

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/Velocidex/ordereddict"
	"github.com/alecthomas/repr"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/vgrid/scope"
	"www.velocidex.com/golang/vgrid/sort"
	"www.velocidex.com/golang/vgrid/types"
)

func person(id int, first, last string) *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("id", id).
		Set("firstName", first).
		Set("lastName", last)
}

func makePeople() []types.Row {
	return []types.Row{
		person(1, "John", "Smith").Set("age", 26).Set("score", 4).
			Set("born", "2001-05-01").Set("active", true).
			Set("address", ordereddict.NewDict().Set("zip", 123456)),
		person(2, "Jane", "Smith").Set("age", 27).Set("score", 5).
			Set("born", "2003-01-01").Set("active", false).
			Set("address", ordereddict.NewDict().Set("zip", 222222)),
		person(3, "Barbara", "Doe").Set("age", 31).Set("score", 88).
			Set("born", "1999-12-31").Set("active", true).
			Set("address", ordereddict.NewDict().Set("zip", 123456)),
		person(4, "Johnny", "Appleseed").Set("score", 87).
			Set("born", "2002-07-04"),
		person(5, "Joe", "Bloggs").Set("age", 19).Set("score", 100.5).
			Set("born", "2001-01-01").
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

func asc(column string) types.SortKey {
	return types.SortKey{ColumnId: column, Direction: types.ASC}
}

func desc(column string) types.SortKey {
	return types.SortKey{ColumnId: column, Direction: types.DESC}
}

func ids(rows []types.Row) []types.Any {
	result := []types.Any{}
	for _, row := range rows {
		id, _ := row.(*ordereddict.Dict).Get("id")
		result = append(result, id)
	}
	return result
}

type sortTest struct {
	name string
	keys []types.SortKey
}

var sortTests = []sortTest{
	{"lastName ASC", []types.SortKey{asc("lastName")}},
	{"lastName ASC, firstName ASC", []types.SortKey{
		asc("lastName"), asc("firstName")}},
	{"Missing age sorts last descending", []types.SortKey{desc("age")}},
	{"Missing age sorts last ascending", []types.SortKey{asc("age")}},
	{"Numbers sort numerically", []types.SortKey{desc("score")}},
	{"Dates", []types.SortKey{asc("born")}},
	{"Nested path then id", []types.SortKey{desc("zip"), desc("id")}},
	{"Unknown column is skipped", []types.SortKey{
		asc("nope"), asc("firstName")}},
	{"Booleans", []types.SortKey{desc("active")}},
	{"No keys", nil},
}

func TestSortCases(t *testing.T) {
	engine := sort.NewEngine(scope.NewScope())
	result := ordereddict.NewDict()

	for i, test := range sortTests {
		rows := engine.SortRows(makePeople(), test.keys, peopleColumns)
		result.Set(fmt.Sprintf("%03d %s", i, test.name), ids(rows))
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("fixtures"),
		goldie.WithNameSuffix(".golden"),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)
	g.AssertJson(t, "TestSortCases", result)
}

func TestMultiKeySort(t *testing.T) {
	rows := []types.Row{
		ordereddict.NewDict().Set("lastName", "Smith").Set("firstName", "Jane"),
		ordereddict.NewDict().Set("lastName", "Smith").Set("firstName", "Barbara"),
	}
	columns := []types.Column{
		{Id: "lastName", Field: "lastName"},
		{Id: "firstName", Field: "firstName"},
	}

	engine := sort.NewEngine(scope.NewScope())
	result := engine.SortRows(rows,
		[]types.SortKey{asc("lastName"), asc("firstName")}, columns)

	first, _ := result[0].(*ordereddict.Dict).Get("firstName")
	assert.Equal(t, "Barbara", first, repr.String(result))

	// The input is not modified.
	first, _ = rows[0].(*ordereddict.Dict).Get("firstName")
	assert.Equal(t, "Jane", first)
}

func TestSortIsStable(t *testing.T) {
	rows := []types.Row{}
	for i := 0; i < 100; i++ {
		rows = append(rows, ordereddict.NewDict().
			Set("id", i).
			Set("group", i%3))
	}
	columns := []types.Column{{Id: "group", Field: "group",
		Type: types.FieldTypeNumber}}

	engine := sort.NewEngine(scope.NewScope())
	for _, key := range []types.SortKey{asc("group"), desc("group")} {
		result := engine.SortRows(rows, []types.SortKey{key}, columns)

		last_id := map[int]int{}
		for _, row := range result {
			dict := row.(*ordereddict.Dict)
			id, _ := dict.Get("id")
			group, _ := dict.Get("group")

			previous, pres := last_id[group.(int)]
			if pres {
				assert.True(t, id.(int) > previous,
					"row %v out of order in group %v", id, group)
			}
			last_id[group.(int)] = id.(int)
		}
	}
}

func TestCompare(t *testing.T) {
	engine := sort.NewEngine(scope.NewScope())
	people := makePeople()
	keys := []types.SortKey{asc("lastName"), asc("firstName")}

	assert.Equal(t, 1, engine.Compare(keys, people[0], people[1], peopleColumns))
	assert.Equal(t, -1, engine.Compare(keys, people[1], people[0], peopleColumns))
	assert.Equal(t, 0, engine.Compare(keys, people[0], people[0], peopleColumns))

	// No usable keys means everything ties.
	assert.Equal(t, 0, engine.Compare([]types.SortKey{asc("nope")},
		people[0], people[1], peopleColumns))

	// Missing values sort last in both directions.
	for _, key := range []types.SortKey{asc("age"), desc("age")} {
		assert.Equal(t, 1, engine.Compare([]types.SortKey{key},
			people[3], people[0], peopleColumns))
		assert.Equal(t, -1, engine.Compare([]types.SortKey{key},
			people[0], people[3], peopleColumns))
	}
}

func TestComparer(t *testing.T) {
	// Sort by string length, longest first.
	columns := []types.Column{{
		Id:    "lastName",
		Field: "lastName",
		Comparer: func(a, b types.Any) int {
			return len(b.(string)) - len(a.(string))
		},
	}}

	engine := sort.NewEngine(scope.NewScope())
	result := engine.SortRows(makePeople(),
		[]types.SortKey{asc("lastName")}, columns)

	// Appleseed(9) Bloggs(6) Smith(5) Smith(5) Doe(3)
	assert.Equal(t, []types.Any{4, 5, 1, 2, 3}, ids(result))
}

func TestNumberStringsSortNumerically(t *testing.T) {
	rows := []types.Row{}
	for _, value := range []string{"10", "9", "100", "-1"} {
		rows = append(rows, ordereddict.NewDict().Set("id", value))
	}

	engine := sort.NewEngine(scope.NewScope())

	numeric := []types.Column{{Id: "id", Field: "id", Type: types.FieldTypeNumber}}
	assert.Equal(t, []types.Any{"-1", "9", "10", "100"},
		ids(engine.SortRows(rows, []types.SortKey{asc("id")}, numeric)))

	text := []types.Column{{Id: "id", Field: "id", Type: types.FieldTypeString}}
	assert.Equal(t, []types.Any{"-1", "10", "100", "9"},
		ids(engine.SortRows(rows, []types.SortKey{asc("id")}, text)))
}

func TestNaNSortsAfterNumbers(t *testing.T) {
	engine := sort.NewEngine(scope.NewScope())
	numeric := []types.Column{{Id: "id", Field: "id", Type: types.FieldTypeNumber}}

	rows := []types.Row{}
	for _, value := range []types.Any{3, "NaN", 1, 2} {
		rows = append(rows, ordereddict.NewDict().Set("id", value))
	}
	assert.Equal(t, []types.Any{1, 2, 3, "NaN"},
		ids(engine.SortRows(rows, []types.SortKey{asc("id")}, numeric)))
	assert.Equal(t, []types.Any{"NaN", 3, 2, 1},
		ids(engine.SortRows(rows, []types.SortKey{desc("id")}, numeric)))

	// Real NaN cells.
	rows = []types.Row{}
	for _, value := range []float64{3, math.NaN(), 1, 2} {
		rows = append(rows, ordereddict.NewDict().Set("id", value))
	}
	sorted := ids(engine.SortRows(rows, []types.SortKey{asc("id")}, numeric))
	assert.Equal(t, []types.Any{1.0, 2.0, 3.0}, sorted[:3])
	assert.True(t, math.IsNaN(sorted[3].(float64)))
}

func TestDataKey(t *testing.T) {
	rows := []types.Row{
		ordereddict.NewDict().Set("id", 1).
			Set("owner", ordereddict.NewDict().Set("name", "Zed")),
		ordereddict.NewDict().Set("id", 2).
			Set("owner", ordereddict.NewDict().Set("name", "Amy")),
	}
	columns := []types.Column{{
		Id: "owner", Field: "owner", DataKey: "name", Type: types.FieldTypeObject}}

	engine := sort.NewEngine(scope.NewScope())
	result := engine.SortRows(rows, []types.SortKey{asc("owner")}, columns)
	assert.Equal(t, []types.Any{2, 1}, ids(result))
}

func TestDefaultSorter(t *testing.T) {
	ctx := context.Background()
	input := make(chan types.Row)
	go func() {
		defer close(input)
		for _, row := range makePeople() {
			input <- row
		}
	}()

	result := []types.Row{}
	for row := range (sort.DefaultSorter{}).Sort(ctx, scope.NewScope(), input,
		[]types.SortKey{asc("firstName")}, peopleColumns) {
		result = append(result, row)
	}
	assert.Equal(t, []types.Any{3, 2, 5, 1, 4}, ids(result))
}

func TestTraceSkippedKeys(t *testing.T) {
	env := scope.NewScope()
	buffer := &strings.Builder{}
	env.SetTracer(newLogger(buffer))

	engine := sort.NewEngine(env)
	engine.SortRows(makePeople(), []types.SortKey{asc("nope")}, peopleColumns)
	assert.Contains(t, buffer.String(), "column nope not found")
}
