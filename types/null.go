package types

import "reflect"

// A real type which encodes to JSON NULL. The field resolver returns
// it when a path can not be resolved - this is what the grid treats
// as an undefined cell.
type Null struct{}

func (self Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (self Null) String() string {
	return "Null"
}

func IsNil(a interface{}) bool {
	if a == nil {
		return true
	}

	switch a.(type) {
	case Null, *Null:
		return true
	default:
		switch reflect.TypeOf(a).Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice:
			return reflect.ValueOf(a).IsNil()
		}
		return false
	}
}
