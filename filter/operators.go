package filter

import (
	"strings"

	"www.velocidex.com/golang/vgrid/protocols"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// A condition is a filter reduced to a single operator and the terms
// it needs. Range conditions always carry exactly two terms, a nil
// term means that side of the range is open.
type condition struct {
	operator types.Operator
	terms    []types.Any
}

type predicate func(env types.Environment,
	field_type types.FieldType, value types.Any, terms []types.Any) bool

var operatorTable = map[types.Operator]predicate{
	types.OperatorEQ:             eq,
	types.OperatorNE:             ne,
	types.OperatorIN:             in,
	types.OperatorNotIN:          notIn,
	types.OperatorGT:             ordered(func(c int) bool { return c > 0 }),
	types.OperatorGE:             ordered(func(c int) bool { return c >= 0 }),
	types.OperatorLT:             ordered(func(c int) bool { return c < 0 }),
	types.OperatorLE:             ordered(func(c int) bool { return c <= 0 }),
	types.OperatorStartsWith:     text(strings.HasPrefix),
	types.OperatorEndsWith:       text(strings.HasSuffix),
	types.OperatorContains:       text(strings.Contains),
	types.OperatorRangeInclusive: between(true),
	types.OperatorRangeExclusive: between(false),
}

// Operators which a missing value still satisfies.
func nullSatisfies(op types.Operator) bool {
	return op == types.OperatorNE || op == types.OperatorNotIN
}

func eq(env types.Environment, field_type types.FieldType,
	value types.Any, terms []types.Any) bool {
	return protocols.Equal(env, field_type, value, terms[0])
}

func ne(env types.Environment, field_type types.FieldType,
	value types.Any, terms []types.Any) bool {
	return !protocols.Equal(env, field_type, value, terms[0])
}

func in(env types.Environment, field_type types.FieldType,
	value types.Any, terms []types.Any) bool {
	for _, term := range terms {
		if protocols.Equal(env, field_type, value, term) {
			return true
		}
	}
	return false
}

func notIn(env types.Environment, field_type types.FieldType,
	value types.Any, terms []types.Any) bool {
	return !in(env, field_type, value, terms)
}

func ordered(accept func(c int) bool) predicate {
	return func(env types.Environment, field_type types.FieldType,
		value types.Any, terms []types.Any) bool {
		return accept(protocols.Compare(env, field_type, value, terms[0]))
	}
}

func text(match func(s, substr string) bool) predicate {
	return func(env types.Environment, field_type types.FieldType,
		value types.Any, terms []types.Any) bool {
		return match(utils.ToDisplayString(value),
			utils.ToDisplayString(terms[0]))
	}
}

func between(inclusive bool) predicate {
	return func(env types.Environment, field_type types.FieldType,
		value types.Any, terms []types.Any) bool {
		lower, upper := terms[0], terms[1]
		if lower != nil {
			c := protocols.Compare(env, field_type, value, lower)
			if c < 0 || (c == 0 && !inclusive) {
				return false
			}
		}

		if upper != nil {
			c := protocols.Compare(env, field_type, value, upper)
			if c > 0 || (c == 0 && !inclusive) {
				return false
			}
		}
		return true
	}
}

// Operators which may be written in front of a search term when no
// explicit operator was chosen, e.g. ">=26". Longest first.
var inlineOperators = []struct {
	prefix   string
	operator types.Operator
}{
	{"<>", types.OperatorNE},
	{"!=", types.OperatorNE},
	{">=", types.OperatorGE},
	{"<=", types.OperatorLE},
	{">", types.OperatorGT},
	{"<", types.OperatorLT},
	{"=", types.OperatorEQ},
}

// Reduce a filter to a condition. Returns false when the filter
// does not constrain anything.
func compile(env types.Environment, filter types.Filter) (condition, bool) {
	terms := activeTerms(filter.SearchTerms)
	if len(terms) == 0 {
		return condition{}, false
	}

	op := filter.Operator
	if _, pres := operatorTable[op]; !pres && op != types.OperatorNone {
		env.Trace("filter: unknown operator %v on %v, using EQ",
			int(op), filter.ColumnId)
		op = types.OperatorEQ
	}

	str, is_str := terms[0].(string)
	single_string := len(terms) == 1 && is_str

	if single_string && op == types.OperatorNone {
		str = strings.TrimSpace(str)
		for _, inline := range inlineOperators {
			if strings.HasPrefix(str, inline.prefix) {
				op = inline.operator
				str = strings.TrimSpace(strings.TrimPrefix(str, inline.prefix))
				terms = []types.Any{str}
				break
			}
		}

		// A bare operator like ">" has nothing to compare with.
		if str == "" {
			return condition{}, false
		}
	}

	// A single "A..B" term is always a range. It is exclusive unless
	// the inclusive range was explicitly requested.
	if single_string && strings.Contains(str, "..") {
		parts := strings.SplitN(str, "..", 2)
		if op != types.OperatorRangeInclusive {
			op = types.OperatorRangeExclusive
		}
		return condition{
			operator: op,
			terms:    []types.Any{bound(parts[0]), bound(parts[1])},
		}, true
	}

	switch op {
	case types.OperatorRangeInclusive, types.OperatorRangeExclusive:
		if len(terms) < 2 {
			env.Trace("filter: range on %v needs two terms, using EQ",
				filter.ColumnId)
			return condition{operator: types.OperatorEQ, terms: terms}, true
		}
		return condition{operator: op, terms: terms[:2]}, true

	case types.OperatorNone, types.OperatorEQ:
		if single_string {
			wildcard, ok := wildcardCondition(str)
			if ok {
				return wildcard, true
			}
		}
		return condition{operator: types.OperatorEQ, terms: terms}, true

	case types.OperatorStartsWith, types.OperatorEndsWith, types.OperatorContains:
		if is_str {
			terms = []types.Any{strings.Trim(str, "*")}
		}
	}

	return condition{operator: op, terms: terms}, true
}

// "Jo*" starts with, "*hn" ends with and "*oh*" contains.
func wildcardCondition(term string) (condition, bool) {
	if len(term) < 2 {
		return condition{}, false
	}

	leading := strings.HasPrefix(term, "*")
	trailing := strings.HasSuffix(term, "*")
	stripped := []types.Any{strings.Trim(term, "*")}

	switch {
	case leading && trailing:
		return condition{operator: types.OperatorContains, terms: stripped}, true
	case trailing:
		return condition{operator: types.OperatorStartsWith, terms: stripped}, true
	case leading:
		return condition{operator: types.OperatorEndsWith, terms: stripped}, true
	}
	return condition{}, false
}

func bound(term string) types.Any {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return term
}

// Drop empty strings and nils. The remaining terms are the ones
// which constrain the value.
func activeTerms(terms []types.Any) []types.Any {
	result := make([]types.Any, 0, len(terms))
	for _, term := range terms {
		if types.IsNil(term) {
			continue
		}
		str, ok := term.(string)
		if ok && str == "" {
			continue
		}
		result = append(result, term)
	}
	return result
}
