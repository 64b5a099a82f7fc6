package presets

import (
	"io"

	"github.com/Velocidex/ordereddict"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/arg_parser"
	"www.velocidex.com/golang/vgrid/sources"
	"www.velocidex.com/golang/vgrid/types"
)

type columnArgs struct {
	Id               string            `vgrid:"required,field=id"`
	Name             string            `vgrid:"field=name"`
	Field            string            `vgrid:"field=field"`
	QueryField       string            `vgrid:"field=queryField"`
	QueryFieldFilter string            `vgrid:"field=queryFieldFilter"`
	QueryFieldSorter string            `vgrid:"field=queryFieldSorter"`
	DataKey          string            `vgrid:"field=dataKey"`
	Type             string            `vgrid:"field=type"`
	FilterSearchType string            `vgrid:"field=filterSearchType"`
	Filter           *ordereddict.Dict `vgrid:"field=filter"`
}

type columnFilterArgs struct {
	Operator    string      `vgrid:"field=operator"`
	SearchTerms []types.Any `vgrid:"field=searchTerms"`
}

type filterArgs struct {
	ColumnId    string      `vgrid:"required,field=columnId"`
	Operator    string      `vgrid:"field=operator"`
	SearchTerms []types.Any `vgrid:"field=searchTerms"`
}

type sorterArgs struct {
	ColumnId  string `vgrid:"required,field=columnId"`
	Direction string `vgrid:"field=direction"`
}

type gridStateArgs struct {
	Filters []*ordereddict.Dict `vgrid:"field=filters"`
	Sorters []*ordereddict.Dict `vgrid:"field=sorters"`
}

// Unknown operators fall back to EQ rather than failing the load.
func parseOperator(name string) types.Operator {
	op, _ := types.ParseOperator(name)
	return op
}

// ParseColumn builds a column from its plain data form, e.g.
// {"id": "zip", "field": "address.zip", "type": "number"}. A column
// without a field uses its id as the field.
func ParseColumn(args *ordereddict.Dict) (types.Column, error) {
	arg := &columnArgs{}
	err := arg_parser.ExtractArgs(args, arg)
	if err != nil {
		return types.Column{}, errors.Wrap(err, "column")
	}

	result := types.Column{
		Id:               arg.Id,
		Field:            arg.Field,
		QueryField:       arg.QueryField,
		QueryFieldFilter: arg.QueryFieldFilter,
		QueryFieldSorter: arg.QueryFieldSorter,
		DataKey:          arg.DataKey,
		Type:             types.ParseFieldType(arg.Type),
		FilterSearchType: types.ParseFieldType(arg.FilterSearchType),
	}

	if result.Field == "" {
		result.Field = result.Id
	}

	if arg.Filter != nil {
		filter_arg := &columnFilterArgs{}
		err := arg_parser.ExtractArgs(arg.Filter, filter_arg)
		if err != nil {
			return types.Column{}, errors.Wrapf(err, "column %v filter", arg.Id)
		}
		result.Filter = &types.ColumnFilter{
			Operator:    parseOperator(filter_arg.Operator),
			SearchTerms: filter_arg.SearchTerms,
		}
	}

	return result, nil
}

func ParseFilter(args *ordereddict.Dict) (types.Filter, error) {
	arg := &filterArgs{}
	err := arg_parser.ExtractArgs(args, arg)
	if err != nil {
		return types.Filter{}, errors.Wrap(err, "filter")
	}

	return types.Filter{
		ColumnId:    arg.ColumnId,
		Operator:    parseOperator(arg.Operator),
		SearchTerms: arg.SearchTerms,
	}, nil
}

func ParseSortKey(args *ordereddict.Dict) (types.SortKey, error) {
	arg := &sorterArgs{}
	err := arg_parser.ExtractArgs(args, arg)
	if err != nil {
		return types.SortKey{}, errors.Wrap(err, "sorter")
	}

	return types.SortKey{
		ColumnId:  arg.ColumnId,
		Direction: types.ParseDirection(arg.Direction),
	}, nil
}

func ParseGridState(args *ordereddict.Dict) (*GridState, error) {
	arg := &gridStateArgs{}
	err := arg_parser.ExtractArgs(args, arg)
	if err != nil {
		return nil, errors.Wrap(err, "grid state")
	}

	result := &GridState{
		Filters: []types.Filter{},
		Sorters: []types.SortKey{},
	}
	for _, item := range arg.Filters {
		filter, err := ParseFilter(item)
		if err != nil {
			return nil, err
		}
		result.Filters = append(result.Filters, filter)
	}

	for _, item := range arg.Sorters {
		sorter, err := ParseSortKey(item)
		if err != nil {
			return nil, err
		}
		result.Sorters = append(result.Sorters, sorter)
	}
	return result, nil
}

// ColumnsFromJSON reads a JSON array of column definitions.
func ColumnsFromJSON(reader io.Reader) ([]types.Column, error) {
	items, err := sources.DecodeDicts(reader)
	if err != nil {
		return nil, err
	}

	result := make([]types.Column, 0, len(items))
	for _, dict := range items {
		column, err := ParseColumn(dict)
		if err != nil {
			return nil, err
		}
		result = append(result, column)
	}
	return result, nil
}

// StateFromJSON reads a saved grid state object.
func StateFromJSON(reader io.Reader) (*GridState, error) {
	dict, err := sources.DecodeDict(reader)
	if err != nil {
		return nil, err
	}
	return ParseGridState(dict)
}
