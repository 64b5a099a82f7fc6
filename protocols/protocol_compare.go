package protocols

import (
	"strings"

	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Three way comparison protocol. Compare returns a negative number
// if a < b, 0 if they are equal and a positive number if a > b.
type CompareProtocol interface {
	Applicable(a types.Any, b types.Any) bool
	Compare(env types.Environment, a types.Any, b types.Any) int
}

type CompareDispatcher struct {
	impl []CompareProtocol
}

func (self CompareDispatcher) Copy() CompareDispatcher {
	return CompareDispatcher{
		append([]CompareProtocol{}, self.impl...)}
}

// Comparison table
// LHS    RHS    -> Promoted
// int    int    -> int64(lhs) ? int64(rhs)
// int    float  -> float(lhs) ? rhs
// float  int    -> lhs ? float(rhs)
// string string -> lexicographic
// time   time   -> chronological
// bool   bool   -> false < true
//
// Anything else is looked up in the registered implementations. The
// second return value is false when the values are not comparable,
// which includes comparisons with NULL.
func (self CompareDispatcher) Compare(
	env types.Environment, a types.Any, b types.Any) (int, bool) {
	if types.IsNil(a) || types.IsNil(b) {
		return 0, false
	}

	switch t := a.(type) {
	case string:
		rhs, ok := b.(string)
		if ok {
			return strings.Compare(t, rhs), true
		}

	case bool:
		rhs, ok := b.(bool)
		if ok {
			return compareBool(t, rhs), true
		}
	}

	lhs_time, ok := toTime(a)
	if ok {
		rhs, ok := toTime(b)
		if ok {
			return compareTime(lhs_time, rhs), true
		}
	}

	if utils.IsInt(a) && utils.IsInt(b) {
		lhs, _ := utils.ToInt64(a)
		rhs, _ := utils.ToInt64(b)
		return compareInt(lhs, rhs), true
	}

	if utils.IsNumber(a) && utils.IsNumber(b) {
		lhs, _ := utils.ToFloat(a)
		rhs, _ := utils.ToFloat(b)
		return compareFloat(lhs, rhs), true
	}

	for i, impl := range self.impl {
		if impl.Applicable(a, b) {
			env.GetStats().IncProtocolSearch(i)
			return impl.Compare(env, a, b), true
		}
	}

	return 0, false
}

func (self *CompareDispatcher) AddImpl(elements ...CompareProtocol) {
	// Later implementations take precedence.
	for _, impl := range elements {
		self.impl = append([]CompareProtocol{impl}, self.impl...)
	}
}
