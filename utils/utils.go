package utils

import (
	"encoding/json"
	"reflect"
	"unicode"

	"github.com/alecthomas/repr"
)

func Debug(arg interface{}) {
	if arg != nil {
		repr.Println(arg)
	} else {
		repr.Println("nil")
	}
}

// Is the symbol exported by Go? Only names with upper case are exported.
func IsExported(name string) bool {
	switch name {
	// Ignore common methods which should not be exported.
	case "MarshalJSON", "MarshalYAML", "String":
		return false

	default:
		if len(name) == 0 || name[0] == '_' {
			return false
		}

		runes := []rune(name)
		return runes[0] == unicode.ToUpper(runes[0])
	}
}

// A getter is an exported method taking no args.
func IsCallable(method_value reflect.Value, field_name string) bool {
	if !method_value.IsValid() {
		return false
	}

	if !IsExported(field_name) {
		return false
	}

	return method_value.Type().NumIn() == 0
}

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}

	switch reflect.TypeOf(i).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func:
		return reflect.ValueOf(i).IsNil()
	}
	return false
}

func InString(hay []string, needle string) bool {
	for _, x := range hay {
		if x == needle {
			return true
		}
	}

	return false
}

func IsArray(a interface{}) bool {
	rt := reflect.TypeOf(a)
	if rt == nil {
		return false
	}
	return rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array
}

// Only real strings are accepted here - use ToDisplayString to
// format arbitrary values.
func ToString(x interface{}) (string, bool) {
	switch t := x.(type) {
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	case []byte:
		return string(t), true
	default:
		return "", false
	}
}

// Does x resemble a int?
func IsInt(x interface{}) bool {
	switch x.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}

	return false
}

// Is x one of the Go number types (including json.Number)?
func IsNumber(x interface{}) bool {
	switch x.(type) {
	case float32, float64, json.Number:
		return true
	}
	return IsInt(x)
}

// Dereference pointers to numbers so the conversions below only need
// to deal with values.
func deref(x interface{}) interface{} {
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return x
	}
	switch v.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return v.Elem().Interface()
	}
	return x
}

func ToFloat(x interface{}) (float64, bool) {
	switch t := deref(x).(type) {
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		value, err := t.Float64()
		return value, err == nil
	default:
		return 0, false
	}
}

func ToInt64(x interface{}) (int64, bool) {
	switch t := deref(x).(type) {
	case int64:
		return t, true
	case json.Number:
		value, err := t.Int64()
		if err == nil {
			return value, true
		}
	case uint64:
		return int64(t), true
	}

	value, ok := ToFloat(x)
	if !ok {
		return 0, false
	}
	return int64(value), true
}
