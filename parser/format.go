package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

var (
	plainColumnRegex = regexp.MustCompile(
		`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)

	// Words the lexer reads as something other than an identifier.
	reservedWords = []string{
		"AND", "ASC", "DESC", "NULL", "TRUE", "FALSE", "NOT_IN", "NIN",
		"IN", "EQ", "NE", "GT", "GE", "LT", "LE", "STARTS_WITH",
		"ENDS_WITH", "CONTAINS", "RANGE_INCLUSIVE", "RANGE_EXCLUSIVE",
	}
)

// FormatFilters writes filters back out as an expression which
// ParseFilters reads into the same filters.
func FormatFilters(filters []types.Filter) string {
	conditions := make([]string, 0, len(filters))
	for _, filter := range filters {
		conditions = append(conditions, formatFilter(filter))
	}
	return strings.Join(conditions, " AND ")
}

func formatFilter(filter types.Filter) string {
	result := formatColumn(filter.ColumnId)
	if filter.Operator != types.OperatorNone {
		result += " " + filter.Operator.String()
	}

	if len(filter.SearchTerms) == 1 {
		return result + " " + formatTerm(filter.SearchTerms[0])
	}

	terms := make([]string, 0, len(filter.SearchTerms))
	for _, term := range filter.SearchTerms {
		terms = append(terms, formatTerm(term))
	}
	return result + " (" + strings.Join(terms, ", ") + ")"
}

// FormatSortKeys is the inverse of ParseSortKeys.
func FormatSortKeys(keys []types.SortKey) string {
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		result = append(result,
			formatColumn(key.ColumnId)+" "+key.Direction.String())
	}
	return strings.Join(result, ", ")
}

func formatColumn(name string) string {
	if !plainColumnRegex.MatchString(name) {
		return "`" + name + "`"
	}

	for _, segment := range strings.Split(name, ".") {
		if utils.InString(reservedWords, strings.ToUpper(segment)) {
			return "`" + name + "`"
		}
	}
	return name
}

func formatTerm(term types.Any) string {
	switch t := term.(type) {
	case types.Null, *types.Null, nil:
		return "NULL"

	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"

	case string:
		return strconv.Quote(t)
	}

	if utils.IsInt(term) {
		value, _ := utils.ToInt64(term)
		return strconv.FormatInt(value, 10)
	}

	if utils.IsNumber(term) {
		value, _ := utils.ToFloat(term)
		if !math.IsNaN(value) && !math.IsInf(value, 0) {
			return strconv.FormatFloat(value, 'g', -1, 64)
		}
	}

	return strconv.Quote(utils.ToDisplayString(term))
}
