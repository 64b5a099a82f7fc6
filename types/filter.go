package types

import "strings"

// Operator is the closed set of comparisons a filter may request.
type Operator int

const (
	// No operator was given. Behaves like EQ but lets inline
	// operators in the search term (e.g. ">=26") take effect.
	OperatorNone Operator = iota
	OperatorEQ
	OperatorNE
	OperatorIN
	OperatorNotIN
	OperatorGT
	OperatorGE
	OperatorLT
	OperatorLE
	OperatorStartsWith
	OperatorEndsWith
	OperatorContains
	OperatorRangeInclusive
	OperatorRangeExclusive
)

var operatorNames = map[Operator]string{
	OperatorNone:           "",
	OperatorEQ:             "EQ",
	OperatorNE:             "NE",
	OperatorIN:             "IN",
	OperatorNotIN:          "NOT_IN",
	OperatorGT:             "GT",
	OperatorGE:             "GE",
	OperatorLT:             "LT",
	OperatorLE:             "LE",
	OperatorStartsWith:     "STARTS_WITH",
	OperatorEndsWith:       "ENDS_WITH",
	OperatorContains:       "CONTAINS",
	OperatorRangeInclusive: "RANGE_INCLUSIVE",
	OperatorRangeExclusive: "RANGE_EXCLUSIVE",
}

// Aliases accepted by ParseOperator, keyed by their upper cased form.
var operatorAliases = map[string]Operator{
	"":                OperatorNone,
	"EQ":              OperatorEQ,
	"=":               OperatorEQ,
	"==":              OperatorEQ,
	"EQUAL":           OperatorEQ,
	"NE":              OperatorNE,
	"!=":              OperatorNE,
	"<>":              OperatorNE,
	"NOT_EQUAL":       OperatorNE,
	"IN":              OperatorIN,
	"NOT_IN":          OperatorNotIN,
	"NOTIN":           OperatorNotIN,
	"NOT IN":          OperatorNotIN,
	"NIN":             OperatorNotIN,
	"GT":              OperatorGT,
	">":               OperatorGT,
	"GE":              OperatorGE,
	">=":              OperatorGE,
	"LT":              OperatorLT,
	"<":               OperatorLT,
	"LE":              OperatorLE,
	"<=":              OperatorLE,
	"STARTS_WITH":     OperatorStartsWith,
	"STARTSWITH":      OperatorStartsWith,
	"A*":              OperatorStartsWith,
	"ENDS_WITH":       OperatorEndsWith,
	"ENDSWITH":        OperatorEndsWith,
	"*Z":              OperatorEndsWith,
	"CONTAINS":        OperatorContains,
	"*":               OperatorContains,
	"RANGE_INCLUSIVE": OperatorRangeInclusive,
	"RANGEINCLUSIVE":  OperatorRangeInclusive,
	"RANGE_EXCLUSIVE": OperatorRangeExclusive,
	"RANGEEXCLUSIVE":  OperatorRangeExclusive,
	"..":              OperatorRangeExclusive,
}

func (self Operator) String() string {
	name, pres := operatorNames[self]
	if !pres {
		return "EQ"
	}
	return name
}

func (self Operator) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

func (self Operator) IsRange() bool {
	return self == OperatorRangeInclusive || self == OperatorRangeExclusive
}

// ParseOperator maps an operator name or symbol to an Operator. The
// second return value is false for names we do not know, in which
// case the operator falls back to EQ.
func ParseOperator(name string) (Operator, bool) {
	op, pres := operatorAliases[strings.ToUpper(strings.TrimSpace(name))]
	if !pres {
		return OperatorEQ, false
	}
	return op, true
}

// A Filter is the active filter on one column. An empty SearchTerms
// never excludes a row. Filters on different columns are combined
// with AND.
type Filter struct {
	ColumnId    string
	Operator    Operator
	SearchTerms []Any
}

// Does the filter actually constrain anything? A list made only of
// empty strings is treated as empty, as is the grid's cleared input.
func (self Filter) IsActive() bool {
	for _, term := range self.SearchTerms {
		if IsNil(term) {
			continue
		}
		str, ok := term.(string)
		if ok && str == "" {
			continue
		}
		return true
	}
	return false
}
