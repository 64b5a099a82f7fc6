// Utility functions for extracting and validating plain data (usually
// decoded from JSON) into column, filter and preset definitions.
package arg_parser

import (
	"reflect"

	"github.com/Velocidex/ordereddict"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Extract the content of args into the struct value. Value's members
// should be tagged with the "vgrid" tag.

// Declare an args struct:

// type ColumnArgs struct {
//    Id string `vgrid:"required,field=id"`
// }

// And parse the struct using this function:
// arg := &ColumnArgs{}
// err := arg_parser.ExtractArgs(args, arg)

// We will raise an error if a required field is missing, a field has
// the wrong type or args contains a key no field asks for.

// NOTE: In order for the field to be populated by this function, the
// field must be exported (i.e. name begins with cap) and it must have
// vgrid tags.
func ExtractArgs(args *ordereddict.Dict, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Type().Kind() != reflect.Ptr {
		return errors.New("ExtractArgs() needs a pointer to a struct")
	}
	v = v.Elem()

	parser, err := GetParser(v)
	if err != nil {
		return err
	}

	return parser.Parse(args, v)
}

// Coerce an arg into a list of strings. A single value expands into a
// list of length 1.
func _ExtractStringArray(arg types.Any) []string {
	var result []string

	if types.IsNil(arg) {
		return result
	}

	slice := reflect.ValueOf(arg)
	if slice.Type().Kind() == reflect.Slice {
		for i := 0; i < slice.Len(); i++ {
			result = append(result,
				utils.ToDisplayString(slice.Index(i).Interface()))
		}
		return result
	}

	return append(result, utils.ToDisplayString(arg))
}

func _ExtractAnyArray(arg types.Any) []types.Any {
	var result []types.Any

	if types.IsNil(arg) {
		return result
	}

	slice := reflect.ValueOf(arg)
	if slice.Type().Kind() == reflect.Slice {
		for i := 0; i < slice.Len(); i++ {
			result = append(result, slice.Index(i).Interface())
		}
		return result
	}

	return append(result, arg)
}

// Lists of objects are delivered as []*ordereddict.Dict.
func _ExtractDictArray(arg types.Any) ([]*ordereddict.Dict, error) {
	var result []*ordereddict.Dict

	for _, item := range _ExtractAnyArray(arg) {
		dict, ok := item.(*ordereddict.Dict)
		if !ok {
			return nil, errors.Errorf("Should be an object not %T", item)
		}
		result = append(result, dict)
	}
	return result, nil
}
