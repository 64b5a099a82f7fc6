package protocols

import (
	"reflect"
	"time"

	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Eq protocol
type EqProtocol interface {
	Applicable(a types.Any, b types.Any) bool
	Eq(env types.Environment, a types.Any, b types.Any) bool
}

type EqDispatcher struct {
	impl []EqProtocol
}

func (self EqDispatcher) Copy() EqDispatcher {
	return EqDispatcher{
		append([]EqProtocol{}, self.impl...)}
}

func (self EqDispatcher) Eq(env types.Environment, a types.Any, b types.Any) bool {
	switch t := a.(type) {
	case types.Null, *types.Null, nil:
		return types.IsNil(b)

	case string:
		rhs, ok := b.(string)
		if ok {
			return t == rhs
		}

	case bool:
		rhs, ok := b.(bool)
		if ok {
			return t == rhs
		}

	case time.Time, *time.Time:
		lhs, _ := toTime(a)
		rhs, ok := toTime(b)
		if ok {
			return lhs.Equal(rhs)
		}
	}

	if utils.IsInt(a) && utils.IsInt(b) {
		lhs, _ := utils.ToInt64(a)
		rhs, _ := utils.ToInt64(b)
		return lhs == rhs
	}

	if utils.IsNumber(a) && utils.IsNumber(b) {
		lhs, _ := utils.ToFloat(a)
		rhs, _ := utils.ToFloat(b)
		return lhs == rhs
	}

	if is_array(a) && is_array(b) {
		return _ArrayEq(env, a, b)
	}

	for i, impl := range self.impl {
		if impl.Applicable(a, b) {
			env.GetStats().IncProtocolSearch(i)
			return impl.Eq(env, a, b)
		}
	}

	env.Trace("Protocol Equal not found for %v (%T) and %v (%T)",
		a, a, b, b)
	return false
}

func (self *EqDispatcher) AddImpl(elements ...EqProtocol) {
	self.impl = append(self.impl, elements...)
}

func _ArrayEq(env types.Environment, a types.Any, b types.Any) bool {
	value_a := reflect.ValueOf(a)
	value_b := reflect.ValueOf(b)

	if value_a.Len() != value_b.Len() {
		return false
	}

	for i := 0; i < value_a.Len(); i++ {
		if !env.Eq(value_a.Index(i).Interface(),
			value_b.Index(i).Interface()) {
			return false
		}
	}

	return true
}

func is_array(a types.Any) bool {
	rt := reflect.TypeOf(a)
	if rt == nil {
		return false
	}
	return rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array
}

func toTime(a types.Any) (time.Time, bool) {
	switch t := a.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}
