package sources

import (
	"context"
	"database/sql"

	"github.com/Velocidex/ordereddict"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database file (or ":memory:").
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "OpenSQLite")
	}
	return db, nil
}

// OpenPostgres connects to a postgres server described by a pgx DSN.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "OpenPostgres")
	}

	db := stdlib.OpenDB(*config)
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "OpenPostgres")
	}
	return db, nil
}

// FromSQL runs the query and returns one *ordereddict.Dict row per
// result row, keyed by column name in select order. NULL becomes
// types.Null{} and byte columns become strings.
func FromSQL(ctx context.Context, db *sql.DB,
	query string, args ...interface{}) ([]types.Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "FromSQL")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "FromSQL")
	}

	result := []types.Row{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		err := rows.Scan(pointers...)
		if err != nil {
			return nil, errors.Wrap(err, "FromSQL")
		}

		row := ordereddict.NewDict()
		for i, name := range columns {
			row.Set(name, normalizeSQLValue(values[i]))
		}
		result = append(result, row)
	}

	err = rows.Err()
	if err != nil {
		return nil, errors.Wrap(err, "FromSQL")
	}
	return result, nil
}

func normalizeSQLValue(value interface{}) types.Any {
	switch t := value.(type) {
	case nil:
		return types.Null{}
	case []byte:
		return string(t)
	}
	return value
}
