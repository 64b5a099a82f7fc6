package protocols

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Associative protocol.
type AssociativeProtocol interface {
	Applicable(a types.Any, b types.Any) bool

	// Returns a value obtained by dereferencing field b from
	// object a. If not present return pres == false and res
	// should be types.Null{}.
	Associative(env types.Environment, a types.Any, b types.Any) (res types.Any, pres bool)
}

type AssociativeDispatcher struct {
	impl []AssociativeProtocol
}

func (self AssociativeDispatcher) Copy() AssociativeDispatcher {
	return AssociativeDispatcher{
		append([]AssociativeProtocol{}, self.impl...)}
}

func (self *AssociativeDispatcher) Associative(
	env types.Environment, a types.Any, b types.Any) (types.Any, bool) {
	if utils.IsNil(a) {
		return types.Null{}, false
	}

	b_str, ok := utils.ToString(b)
	if ok {
		switch t := a.(type) {
		case *ordereddict.Dict:
			return present(t.Get(b_str))

		case map[string]interface{}:
			res, pres := t[b_str]
			return present(res, pres)

		case map[string]string:
			res, pres := t[b_str]
			if !pres {
				return types.Null{}, false
			}
			return res, true

		case types.Null, *types.Null:
			return types.Null{}, false
		}
	}

	for i, impl := range self.impl {
		if impl.Applicable(a, b) {
			env.GetStats().IncProtocolSearch(i)
			return impl.Associative(env, a, b)
		}
	}
	return DefaultAssociative{}.Associative(env, a, b)
}

func (self *AssociativeDispatcher) AddImpl(elements ...AssociativeProtocol) {
	self.impl = append(self.impl, elements...)
}

// Do not let naked nils be retrieved from a container, instead
// return Null{}
func present(res types.Any, pres bool) (types.Any, bool) {
	if !pres {
		return types.Null{}, false
	}
	if utils.IsNil(res) {
		return types.Null{}, true
	}
	return res, true
}

// Last resort associative - uses reflect package to resolve map keys,
// slice indexes, struct fields and getter methods.
type DefaultAssociative struct{}

func (self DefaultAssociative) Applicable(a types.Any, b types.Any) bool {
	return false
}

func (self DefaultAssociative) Associative(
	env types.Environment, a types.Any, b types.Any) (res types.Any, pres bool) {
	defer func() {
		// If an error occurs we return false - not found.
		if r := recover(); r != nil {
			env.Trace("DefaultAssociative: %v", r)
			res, pres = types.Null{}, false
		}
	}()

	a_value := reflect.Indirect(reflect.ValueOf(a))

	switch a_value.Kind() {
	case reflect.Slice, reflect.Array:
		idx, ok := toIndex(b)
		if !ok {
			return types.Null{}, false
		}
		array_length := int64(a_value.Len())

		// Negative index refers to the end of the slice.
		if idx < 0 {
			idx = array_length + idx
		}

		if idx < 0 || idx >= array_length {
			return types.Null{}, false
		}

		return present(valueOf(a_value.Index(int(idx))), true)

	case reflect.Map:
		key, ok := utils.ToString(b)
		if !ok || a_value.Type().Key().Kind() != reflect.String {
			return types.Null{}, false
		}

		value := a_value.MapIndex(
			reflect.ValueOf(key).Convert(a_value.Type().Key()))
		if !value.IsValid() {
			return types.Null{}, false
		}
		return present(valueOf(value), true)

	case reflect.Struct:
		field_name, ok := utils.ToString(b)
		if !ok {
			return types.Null{}, false
		}

		field_value, ok := structField(a_value, field_name)
		if ok {
			return present(valueOf(field_value), true)
		}

		return callGetter(a, field_name)
	}

	field_name, ok := utils.ToString(b)
	if ok {
		return callGetter(a, field_name)
	}

	return types.Null{}, false
}

// Find a struct field by its Go name or its json tag.
func structField(a_value reflect.Value, field_name string) (reflect.Value, bool) {
	a_type := a_value.Type()
	for i := 0; i < a_type.NumField(); i++ {
		field_type := a_type.Field(i)
		if !utils.IsExported(field_type.Name) {
			continue
		}

		json_name := strings.Split(field_type.Tag.Get("json"), ",")[0]
		if field_type.Name == field_name || json_name == field_name ||
			(json_name == "" && strings.EqualFold(field_type.Name, field_name)) {
			return a_value.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// In Go, a common pattern is to return (value, err). We try to guess
// here by taking the first return value as the value.
func callGetter(a types.Any, field_name string) (types.Any, bool) {
	if !utils.IsExported(field_name) {
		field_name = strings.Title(field_name)
	}

	method_value := reflect.ValueOf(a).MethodByName(field_name)
	if !utils.IsCallable(method_value, field_name) {
		return types.Null{}, false
	}

	results := method_value.Call([]reflect.Value{})
	if len(results) == 1 || len(results) == 2 {
		return present(valueOf(results[0]), true)
	}
	return types.Null{}, false
}

func valueOf(value reflect.Value) types.Any {
	if !value.IsValid() || !value.CanInterface() {
		return types.Null{}
	}
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return types.Null{}
	}
	return value.Interface()
}

// Path segments arrive as strings so "0" must index a slice too.
func toIndex(b types.Any) (int64, bool) {
	str, ok := utils.ToString(b)
	if ok {
		idx, err := strconv.ParseInt(str, 10, 64)
		return idx, err == nil
	}
	if utils.IsInt(b) {
		return utils.ToInt64(b)
	}
	return 0, false
}
