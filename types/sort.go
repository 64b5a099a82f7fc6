package types

import (
	"context"
	"strings"
)

type Direction int

const (
	ASC Direction = iota
	DESC
)

func (self Direction) String() string {
	if self == DESC {
		return "DESC"
	}
	return "ASC"
}

func (self Direction) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

// Anything other than desc/descending (any case) sorts ascending.
func ParseDirection(name string) Direction {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DESC", "DESCENDING":
		return DESC
	}
	return ASC
}

// One column's position and direction in a multi column ordering.
// Earlier keys take precedence.
type SortKey struct {
	ColumnId  string
	Direction Direction
}

// A Sorter is a pluggable way to sort a stream of rows.
type Sorter interface {
	Sort(ctx context.Context,
		env Environment,
		input <-chan Row,
		keys []SortKey,
		columns []Column) <-chan Row
}
