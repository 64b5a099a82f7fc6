package arg_parser

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Velocidex/ordereddict"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

type tmpTypes struct {
	any types.Any
}

var (
	// A bit of a hack to get the type of interface fields
	testType  = tmpTypes{}
	anyType   = reflect.ValueOf(testType).Type().Field(0).Type
	dictType  = reflect.TypeOf(&ordereddict.Dict{})
	dictsType = reflect.TypeOf([]*ordereddict.Dict{})
	anysType  = reflect.TypeOf([]types.Any{})
)

// Structs may tag fields with this name to control parsing.
const tagName = "vgrid"

type FieldParser struct {
	Field    string
	FieldIdx int
	Required bool
	Parser   func(value interface{}) (interface{}, error)
}

type Parser struct {
	Fields []*FieldParser
}

func (self *Parser) Parse(args *ordereddict.Dict, target reflect.Value) error {
	if args == nil {
		args = ordereddict.NewDict()
	}

	parsed := make([]string, 0, args.Len())

	for _, parser := range self.Fields {
		value, pres := args.Get(parser.Field)
		if !pres || types.IsNil(value) {
			if parser.Required {
				return errors.Errorf("Field %s is required", parser.Field)
			}
			if pres {
				parsed = append(parsed, parser.Field)
			}
			continue
		}

		// Keep track of the fields we parsed.
		parsed = append(parsed, parser.Field)

		// Convert the value using the parser
		new_value, err := parser.Parser(value)
		if err != nil {
			return errors.Wrapf(err, "Field %s", parser.Field)
		}

		// Now set the field on the struct.
		field_value := target.Field(parser.FieldIdx)
		field_value.Set(reflect.ValueOf(new_value))
	}

	// Something is wrong! We did not extract all the fields from
	// the args, there may be unexpected args.
	if len(parsed) != args.Len() {
		// Slow path should only be taken on error.
		for _, key := range args.Keys() {
			if !utils.InString(parsed, key) {
				return errors.Errorf("Unexpected arg %v", key)
			}
		}
	}

	return nil
}

func anyParser(arg interface{}) (interface{}, error) {
	return arg, nil
}

func anySliceParser(arg interface{}) (interface{}, error) {
	return _ExtractAnyArray(arg), nil
}

func stringSliceParser(arg interface{}) (interface{}, error) {
	return _ExtractStringArray(arg), nil
}

func dictParser(arg interface{}) (interface{}, error) {
	dict, ok := arg.(*ordereddict.Dict)
	if !ok {
		return nil, errors.Errorf("Should be an object not %T", arg)
	}
	return dict, nil
}

func dictSliceParser(arg interface{}) (interface{}, error) {
	return _ExtractDictArray(arg)
}

func stringParser(arg interface{}) (interface{}, error) {
	// If we expect a string and we get an array of length 1 we
	// just take the first element.
	if utils.IsArray(arg) {
		new_value := _ExtractStringArray(arg)
		if len(new_value) == 1 {
			return new_value[0], nil
		}
		return nil, errors.New("Should be a string not a list")
	}

	switch t := arg.(type) {
	case string:
		return t, nil
	case types.Null, *types.Null, nil:
		return "", nil
	default:
		return utils.ToDisplayString(arg), nil
	}
}

func boolParser(arg interface{}) (interface{}, error) {
	a, ok := utils.ToBool(arg)
	if ok {
		return a, nil
	}
	return nil, errors.New(fmt.Sprintf("Should be a bool not %T.", arg))
}

func floatParser(arg interface{}) (interface{}, error) {
	a, ok := utils.ToNumber(arg)
	if ok {
		return a, nil
	}
	return nil, errors.New(fmt.Sprintf("Should be a float not %T.", arg))
}

func int64Parser(arg interface{}) (interface{}, error) {
	if utils.IsNumber(arg) {
		a, ok := utils.ToInt64(arg)
		if ok {
			return a, nil
		}
	}
	return nil, errors.New("Should be an int.")
}

func intParser(arg interface{}) (interface{}, error) {
	a, err := int64Parser(arg)
	if err != nil {
		return nil, err
	}
	return int(a.(int64)), nil
}

// Builds a cacheable parser that can parse into
func BuildParser(v reflect.Value) (*Parser, error) {
	t := v.Type()

	if t.Kind() != reflect.Struct {
		return nil, errors.New("Only structs can be set with ExtractArgs()")
	}

	result := &Parser{}

	for i := 0; i < v.NumField(); i++ {
		// Get the field tag value
		field_types_value := t.Field(i)

		tag := field_types_value.Tag.Get(tagName)

		// Skip if tag is not defined or ignored
		if tag == "" || tag == "-" {
			continue
		}

		directives := strings.Split(tag, ",")
		options := make(map[string]string)
		for _, directive := range directives {
			if strings.Contains(directive, "=") {
				components := strings.Split(directive, "=")
				if len(components) >= 2 {
					options[components[0]] = components[1]
				}
			} else {
				options[directive] = "Y"
			}
		}

		// Is the name specified in the tag?
		field_name, pres := options["field"]
		if !pres {
			field_name = field_types_value.Name
		}

		if field_name == "" {
			panic("Fields can not be empty")
		}

		_, required := options["required"]
		field_parser := &FieldParser{
			Field:    field_name,
			FieldIdx: i,
			Required: required,
		}
		result.Fields = append(result.Fields, field_parser)

		field_value := v.Field(field_types_value.Index[0])
		if !field_value.IsValid() || !field_value.CanSet() {
			return nil, errors.New(fmt.Sprintf(
				"Field %s is unsettable.", field_name))
		}

		switch field_types_value.Type {
		case anyType:
			field_parser.Parser = anyParser
			continue
		case anysType:
			field_parser.Parser = anySliceParser
			continue
		case dictType:
			field_parser.Parser = dictParser
			continue
		case dictsType:
			field_parser.Parser = dictSliceParser
			continue
		}

		// Supported target field types:
		switch field_types_value.Type.Kind() {
		case reflect.Slice:
			if field_types_value.Type != reflect.TypeOf([]string{}) {
				return nil, errors.Errorf(
					"Unsupported slice type for field %v", field_name)
			}
			field_parser.Parser = stringSliceParser

		case reflect.String:
			if field_types_value.Type != reflect.TypeOf("") {
				return nil, errors.Errorf(
					"Unsupported named string for field %v", field_name)
			}
			field_parser.Parser = stringParser

		case reflect.Bool:
			field_parser.Parser = boolParser

		case reflect.Float64:
			field_parser.Parser = floatParser

		case reflect.Int64:
			field_parser.Parser = int64Parser

		case reflect.Int:
			field_parser.Parser = intParser

		default:
			return nil, errors.Errorf("Unsupported type for field %v", field_name)
		}
	}

	return result, nil
}
