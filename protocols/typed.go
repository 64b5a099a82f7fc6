package protocols

import (
	"strings"
	"time"

	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Compare orders two non null values according to a column's
// declared type:
//
//	number  - both sides parsed as numbers (so "26" == 26)
//	date    - both sides parsed as dates
//	boolean - false < true
//	string  - lexicographic on the display form
//	unknown - env.Compare(), then promotion of a string operand to
//	          the other operand's number or time type.
//
// When the values can not be converted to the declared type we fall
// back to a case sensitive comparison of their display strings.
func Compare(env types.Environment,
	field_type types.FieldType, a types.Any, b types.Any) int {
	switch field_type {
	case types.FieldTypeNumber:
		res, ok := compareAsNumber(a, b)
		if ok {
			return res
		}

	case types.FieldTypeDate:
		res, ok := compareAsTime(a, b)
		if ok {
			return res
		}

	case types.FieldTypeBoolean:
		lhs, ok := utils.ToBool(a)
		if ok {
			rhs, ok := utils.ToBool(b)
			if ok {
				return compareBool(lhs, rhs)
			}
		}

	case types.FieldTypeString:

	default:
		res, ok := env.Compare(a, b)
		if ok {
			return res
		}

		res, ok = promote(a, b)
		if ok {
			return res
		}
	}

	return strings.Compare(
		utils.ToDisplayString(a), utils.ToDisplayString(b))
}

// Equal is the equality counterpart of Compare.
func Equal(env types.Environment,
	field_type types.FieldType, a types.Any, b types.Any) bool {
	switch field_type {
	case types.FieldTypeNumber, types.FieldTypeDate, types.FieldTypeBoolean:
		return Compare(env, field_type, a, b) == 0

	case types.FieldTypeString:

	default:
		if env.Eq(a, b) {
			return true
		}

		res, ok := promote(a, b)
		if ok {
			return res == 0
		}
	}

	return utils.ToDisplayString(a) == utils.ToDisplayString(b)
}

// A search term usually arrives as a string while the cell holds a
// real number or time. Promote the string to the cell's type.
func promote(a types.Any, b types.Any) (int, bool) {
	if utils.IsNumber(a) || utils.IsNumber(b) {
		return compareAsNumber(a, b)
	}

	if isTime(a) || isTime(b) {
		return compareAsTime(a, b)
	}
	return 0, false
}

func isTime(a types.Any) bool {
	switch a.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

func compareAsNumber(a types.Any, b types.Any) (int, bool) {
	lhs, ok := utils.ToNumber(a)
	if !ok {
		return 0, false
	}
	rhs, ok := utils.ToNumber(b)
	if !ok {
		return 0, false
	}
	return compareFloat(lhs, rhs), true
}

func compareAsTime(a types.Any, b types.Any) (int, bool) {
	lhs, ok := utils.ToTime(a)
	if !ok {
		return 0, false
	}
	rhs, ok := utils.ToTime(b)
	if !ok {
		return 0, false
	}
	return compareTime(lhs, rhs), true
}
