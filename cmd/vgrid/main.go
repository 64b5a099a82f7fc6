// vgrid filters and sorts rows from a JSON file or a SQL database
// using a column catalog. Examples:
//
//	vgrid query --columns cols.json --rows rows.json \
//	    --where "age >= 26 AND lastName = 'Sm*'" --order "lastName, firstName DESC"
//
//	vgrid query --columns cols.json --sqlite people.db \
//	    --sql "SELECT * FROM people" --where "score '4..88'"
//
//	vgrid parse "born RANGE_INCLUSIVE ('2001-01-01', '2003-01-01')"
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/repr"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid"
	"www.velocidex.com/golang/vgrid/parser"
	"www.velocidex.com/golang/vgrid/presets"
	"www.velocidex.com/golang/vgrid/sources"
	"www.velocidex.com/golang/vgrid/types"
)

var (
	app = kingpin.New("vgrid", "Filter and sort grid rows.")

	query         = app.Command("query", "Filter and sort rows.")
	query_columns = query.Flag("columns", "JSON file with the column catalog.").
			Required().File()
	query_rows   = query.Flag("rows", "JSON file with an array of rows.").File()
	query_sqlite = query.Flag("sqlite", "SQLite database to read rows from.").
			String()
	query_postgres = query.Flag("postgres", "Postgres DSN to read rows from.").
			String()
	query_sql = query.Flag("sql", "Query producing the rows (with --sqlite or --postgres).").
			String()
	query_where   = query.Flag("where", "Filter expression.").String()
	query_order   = query.Flag("order", "Sort expression.").String()
	query_presets = query.Flag("presets", "JSON file with a saved grid state.").File()
	query_prefix  = query.Flag("prefix", "Prefix of the detail row marker fields.").
			Default(types.DefaultRowDetailKeyPrefix).String()
	query_workers = query.Flag("workers", "Filter with this many workers.").
			Default("1").Int()
	query_page_size = query.Flag("page_size", "Emit results in pages of this many rows.").
			Int()
	query_explain = query.Flag("explain", "Log why each row was kept or dropped.").Bool()

	parse       = app.Command("parse", "Parse a filter expression and show the result.")
	parse_expr  = parse.Arg("expression", "The filter expression").Required().String()
	parse_order = parse.Flag("order", "Also parse this sort expression.").String()

	verbose = app.Flag("verbose", "Trace the engines' decisions.").Short('v').Bool()
)

func loadRows(ctx context.Context) ([]types.Row, error) {
	switch {
	case *query_rows != nil:
		defer (*query_rows).Close()
		return sources.FromJSON(*query_rows)

	case *query_sqlite != "" || *query_postgres != "":
		if *query_sql == "" {
			return nil, errors.New("--sql is required with a database")
		}

		var db *sql.DB
		var err error
		if *query_sqlite != "" {
			db, err = sources.OpenSQLite(*query_sqlite)
		} else {
			db, err = sources.OpenPostgres(ctx, *query_postgres)
		}
		if err != nil {
			return nil, err
		}
		defer db.Close()

		return sources.FromSQL(ctx, db, *query_sql)
	}

	return nil, errors.New("One of --rows, --sqlite or --postgres is required")
}

func makeGrid() *vgrid.Grid {
	options := []vgrid.Option{
		vgrid.WithLogger(log.New(os.Stderr, "vgrid: ", 0)),
		vgrid.WithConfig(types.Config{RowDetailKeyPrefix: *query_prefix}),
	}

	if *verbose {
		options = append(options, vgrid.WithTracer(
			log.New(os.Stderr, "", log.Ltime)))
	}

	if *query_explain {
		options = append(options, vgrid.WithExplain())
	}
	return vgrid.NewGrid(options...)
}

func doQuery() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	defer (*query_columns).Close()
	columns, err := presets.ColumnsFromJSON(*query_columns)
	if err != nil {
		return err
	}

	rows, err := loadRows(ctx)
	if err != nil {
		return err
	}

	filters, err := parser.ParseFilters(*query_where)
	if err != nil {
		return err
	}

	keys, err := parser.ParseSortKeys(*query_order)
	if err != nil {
		return err
	}

	if *query_presets != nil {
		defer (*query_presets).Close()
		state, err := presets.StateFromJSON(*query_presets)
		if err != nil {
			return err
		}

		var preset_filters []types.Filter
		var preset_keys []types.SortKey
		columns, preset_filters, preset_keys = state.Apply(columns)

		// Explicit expressions refine the saved state.
		filters = append(preset_filters, filters...)
		keys = append(keys, preset_keys...)
	}

	grid := makeGrid()
	rows, err = grid.ParallelFilterRows(ctx, rows, filters, columns, *query_workers)
	if err != nil {
		return err
	}
	rows = grid.SortRows(rows, keys, columns)

	for result := range grid.GetResponseChannel(ctx, rows, columns, *query_page_size) {
		fmt.Println(string(result.Payload))
	}

	if *verbose {
		grid.Log("stats: %v", repr.String(grid.GetStats().Snapshot()))
	}

	return nil
}

func doParse() error {
	filters, err := parser.ParseFilters(*parse_expr)
	if err != nil {
		return err
	}
	repr.Println(filters)
	fmt.Println(parser.FormatFilters(filters))

	if *parse_order != "" {
		keys, err := parser.ParseSortKeys(*parse_order)
		if err != nil {
			return err
		}
		repr.Println(keys)
		fmt.Println(parser.FormatSortKeys(keys))
	}
	return nil
}

func main() {
	app.HelpFlag.Short('h')

	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case query.FullCommand():
		kingpin.FatalIfError(doQuery(), "query")

	case parse.FullCommand():
		kingpin.FatalIfError(doParse(), "parse")
	}
}
