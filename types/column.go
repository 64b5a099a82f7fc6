package types

import "strings"

// The semantic type of a column. It selects how values are compared
// when filtering and sorting.
type FieldType string

const (
	// An undeclared type compares values by their runtime type.
	FieldTypeUnknown FieldType = ""
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeDate    FieldType = "date"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
)

func ParseFieldType(name string) FieldType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "text":
		return FieldTypeString
	case "number", "integer", "int", "float":
		return FieldTypeNumber
	case "date", "datetime", "dateiso", "dateutc":
		return FieldTypeDate
	case "boolean", "bool":
		return FieldTypeBoolean
	case "object":
		return FieldTypeObject
	default:
		return FieldTypeUnknown
	}
}

// An Accessor extracts a cell value directly from a row, bypassing
// field path resolution.
type Accessor func(row Row) Any

// A Comparer orders two cell values. It returns a negative number
// when a sorts before b, 0 when they are equal and a positive number
// otherwise. Nulls never reach a Comparer.
type Comparer func(a, b Any) int

// The filter declared on a column definition.
type ColumnFilter struct {
	Operator    Operator
	SearchTerms []Any
}

// Column describes how to extract and type one field of a row.
type Column struct {
	Id string

	// Dotted path into the row (e.g. "address.zip").
	Field string

	// Alternative paths used instead of Field. QueryField applies to
	// both filtering and sorting, QueryFieldFilter and
	// QueryFieldSorter only to one of them.
	QueryField       string
	QueryFieldFilter string
	QueryFieldSorter string

	// When the sorted value is an object, DataKey selects the member
	// to sort on.
	DataKey string

	Type FieldType

	// Overrides Type when filtering.
	FilterSearchType FieldType

	Accessor Accessor
	Comparer Comparer

	Filter *ColumnFilter
}

// The path used when filtering on this column.
func (self *Column) FilterPath() string {
	if self.QueryFieldFilter != "" {
		return self.QueryFieldFilter
	}
	if self.QueryField != "" {
		return self.QueryField
	}
	return self.Field
}

// The path used when sorting on this column.
func (self *Column) SortPath() string {
	path := self.Field
	if self.QueryFieldSorter != "" {
		path = self.QueryFieldSorter
	} else if self.QueryField != "" {
		path = self.QueryField
	}

	if self.DataKey != "" {
		if path == "" {
			return self.DataKey
		}
		return path + "." + self.DataKey
	}
	return path
}

func (self *Column) FilterType() FieldType {
	if self.FilterSearchType != FieldTypeUnknown {
		return self.FilterSearchType
	}
	return self.Type
}

// Index columns by id. When an id is repeated the first column wins.
func IndexColumns(columns []Column) map[string]*Column {
	result := make(map[string]*Column, len(columns))
	for i := range columns {
		column := &columns[i]
		_, pres := result[column.Id]
		if !pres {
			result[column.Id] = column
		}
	}
	return result
}
