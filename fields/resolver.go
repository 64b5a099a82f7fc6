// Package fields extracts cell values from rows.
//
// A column names its value either with an explicit Accessor or with
// a dotted path (e.g. "address.zip") which is walked one segment at
// a time using the environment's Associative() protocol. Rows
// standing in for a hierarchical detail view (padding rows) are
// transparently replaced by their parent row.
package fields

import (
	"strings"
	"sync"

	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

type Resolver struct {
	env types.Environment

	// Split paths keyed by column id and path. Purely an
	// optimization.
	paths sync.Map
}

func NewResolver(env types.Environment) *Resolver {
	return &Resolver{env: env}
}

// Resolve returns the column's value in the row using the column's
// Field path. Missing values resolve to types.Null{}.
func (self *Resolver) Resolve(row types.Row, column *types.Column) types.Any {
	return self.resolve(row, column, column.Field)
}

// FilterValue resolves the value a filter on this column sees.
func (self *Resolver) FilterValue(row types.Row, column *types.Column) types.Any {
	return self.resolve(row, column, column.FilterPath())
}

// SortValue resolves the value a sort on this column sees.
func (self *Resolver) SortValue(row types.Row, column *types.Column) types.Any {
	return self.resolve(row, column, column.SortPath())
}

func (self *Resolver) resolve(
	row types.Row, column *types.Column, path string) types.Any {
	row = self.Effective(row)

	if column.Accessor != nil {
		result := column.Accessor(row)
		if utils.IsNil(result) {
			return types.Null{}
		}
		return result
	}

	return self.walk(row, self.split(column.Id, path))
}

// ResolvePath walks a dotted path without a column definition.
func (self *Resolver) ResolvePath(row types.Row, path string) types.Any {
	return self.walk(self.Effective(row), strings.Split(path, "."))
}

// Effective returns the row whose values should be used for row. For
// padding rows this is the linked parent row. The environment's
// configuration is consulted on every call so SetConfig() takes
// effect immediately.
func (self *Resolver) Effective(row types.Row) types.Row {
	config := self.env.GetConfig().Normalize()
	marker, pres := self.env.Associative(row, config.PaddingKey())
	if !pres {
		return row
	}

	is_padding, _ := utils.ToBool(marker)
	if !is_padding {
		return row
	}

	parent, pres := self.env.Associative(row, config.ParentKey())
	if !pres || types.IsNil(parent) {
		return row
	}
	return parent
}

func (self *Resolver) walk(row types.Row, segments []string) types.Any {
	var value types.Any = row
	for _, segment := range segments {
		if types.IsNil(value) {
			return types.Null{}
		}

		next, pres := self.env.Associative(value, segment)
		if !pres {
			return types.Null{}
		}
		value = next
	}

	if types.IsNil(value) {
		return types.Null{}
	}
	return value
}

type pathKey struct {
	column_id string
	path      string
}

func (self *Resolver) split(column_id, path string) []string {
	key := pathKey{column_id, path}
	cached, pres := self.paths.Load(key)
	if pres {
		return cached.([]string)
	}

	segments := strings.Split(path, ".")
	self.paths.Store(key, segments)
	return segments
}
