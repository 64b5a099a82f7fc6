package protocols

import (
	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/vgrid/types"
)

// Implements ordereddict.Dict equality. Two dicts are equal when
// they hold the same keys with equal values - key order is ignored.
type _DictEq struct{}

func (self _DictEq) Eq(env types.Environment, a types.Any, b types.Any) bool {
	a_dict, _ := to_dict(a)
	b_dict, _ := to_dict(b)

	if a_dict.Len() != b_dict.Len() {
		return false
	}

	for _, key := range a_dict.Keys() {
		a_value, _ := a_dict.Get(key)
		b_value, pres := b_dict.Get(key)
		if !pres {
			return false
		}

		if !env.Eq(a_value, b_value) {
			return false
		}
	}

	return true
}

func (self _DictEq) Applicable(a types.Any, b types.Any) bool {
	_, a_ok := to_dict(a)
	_, b_ok := to_dict(b)

	return a_ok && b_ok
}

func to_dict(a types.Any) (*ordereddict.Dict, bool) {
	switch t := a.(type) {
	case *ordereddict.Dict:
		return t, t != nil
	case map[string]interface{}:
		result := ordereddict.NewDict()
		for k, v := range t {
			result.Set(k, v)
		}
		return result, true
	default:
		return nil, false
	}
}
