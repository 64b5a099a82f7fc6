// Package parser reads filters and sort orders written as text.
//
// Filters are conditions joined by AND:
//
//	firstName = 'Jo*' AND age IN (26, 27) AND score '4..88'
//
// Sort orders are comma separated columns with an optional direction:
//
//	lastName ASC, firstName DESC
package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	errors "github.com/pkg/errors"
	"www.velocidex.com/golang/vgrid/types"
)

var (
	gridLexer = lexer.Must(lexer.Regexp(
		`(?ms)` +
			`(\s+)` +
			`|(?ims)(?P<AND>\bAND\b)` +
			`|(?ims)(?P<Direction>\bASC\b|\bDESC\b)` +
			`|(?ims)(?P<Keyword>\bNOT\s+IN\b|\bNOT_IN\b|\bNIN\b|\bIN\b|\bEQ\b|\bNE\b|` +
			`\bGT\b|\bGE\b|\bLT\b|\bLE\b|\bSTARTS_WITH\b|\bENDS_WITH\b|\bCONTAINS\b|` +
			`\bRANGE_INCLUSIVE\b|\bRANGE_EXCLUSIVE\b)` +
			`|(?ims)(?P<NULL>\bNULL\b)` +
			`|(?ims)(?P<BOOL>\bTRUE\b|\bFALSE\b)` +
			"|(?P<Ident>[a-zA-Z_][a-zA-Z0-9_]*|`[^`]+`)" +
			`|(?P<String>'([^'\\]*(\\.[^'\\]*)*)'|"([^"\\]*(\\.[^"\\]*)*)")` +
			`|(?P<Number>[-+]?\d*\.?\d+([eE][-+]?\d+)?)` +
			`|(?P<Operators><>|!=|<=|>=|==|[,.()=<>])`,
	))

	filterParser = participle.MustBuild(
		&_FilterExpression{},
		participle.Lexer(gridLexer),
		participle.Unquote("String"),
		participle.Upper("AND", "Direction", "Keyword", "NULL", "BOOL"),
	)

	sortParser = participle.MustBuild(
		&_SortExpression{},
		participle.Lexer(gridLexer),
		participle.Upper("Direction"),
	)
)

type _FilterExpression struct {
	Conditions []*_Condition `[ @@ { "AND" @@ } ]`
}

type _Condition struct {
	Column   string   `@Ident { @"." @Ident }`
	Operator *string  `[ @( "<>" | "!=" | "<=" | ">=" | "==" | "=" | "<" | ">" | Keyword ) ]`
	Terms    []*_Term `( "(" [ @@ { "," @@ } ] ")" | @@ )`
}

type _Term struct {
	String  *string ` @String`
	Number  *string `| @Number`
	Boolean *string `| @BOOL`
	Null    bool    `| @NULL`
}

type _SortExpression struct {
	Keys []*_SortKey `[ @@ { "," @@ } ]`
}

type _SortKey struct {
	Column    string `@Ident { @"." @Ident }`
	Direction string `[ @Direction ]`
}

func reportError(err error, t participle.Error, expression string) error {
	pos := t.Token().Pos.Offset
	if pos > len(expression) {
		pos = len(expression)
	}
	if pos < 0 {
		pos = 0
	}

	start := pos - 10
	if start < 0 {
		start = 0
	}

	end := pos + 10
	if end > len(expression) {
		end = len(expression)
	}

	return errors.Wrap(
		err,
		expression[start:pos]+"|"+expression[pos:end])
}

func wrapParseError(err error, expression string) error {
	switch t := err.(type) {
	case participle.Error:
		return reportError(err, t, expression)
	default:
		return errors.WithStack(err)
	}
}

// ParseFilters parses a filter expression. An empty expression
// yields no filters.
func ParseFilters(expression string) ([]types.Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	ast := &_FilterExpression{}
	err := filterParser.ParseString(expression, ast)
	if err != nil {
		return nil, wrapParseError(err, expression)
	}

	result := make([]types.Filter, 0, len(ast.Conditions))
	for _, condition := range ast.Conditions {
		filter := types.Filter{
			ColumnId:    columnName(condition.Column),
			SearchTerms: make([]types.Any, 0, len(condition.Terms)),
		}

		if condition.Operator != nil {
			op, ok := types.ParseOperator(
				strings.Join(strings.Fields(*condition.Operator), " "))
			if !ok {
				return nil, errors.Errorf(
					"Unknown operator %v on %v", *condition.Operator,
					filter.ColumnId)
			}
			filter.Operator = op
		}

		for _, term := range condition.Terms {
			value, err := term.Value()
			if err != nil {
				return nil, errors.Wrap(err, filter.ColumnId)
			}
			filter.SearchTerms = append(filter.SearchTerms, value)
		}

		result = append(result, filter)
	}

	return result, nil
}

// ParseSortKeys parses a sort expression. Keys without a direction
// sort ascending.
func ParseSortKeys(expression string) ([]types.SortKey, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	ast := &_SortExpression{}
	err := sortParser.ParseString(expression, ast)
	if err != nil {
		return nil, wrapParseError(err, expression)
	}

	result := make([]types.SortKey, 0, len(ast.Keys))
	for _, key := range ast.Keys {
		result = append(result, types.SortKey{
			ColumnId:  columnName(key.Column),
			Direction: types.ParseDirection(key.Direction),
		})
	}
	return result, nil
}

func (self *_Term) Value() (types.Any, error) {
	switch {
	case self.String != nil:
		return *self.String, nil

	case self.Number != nil:
		int_value, err := strconv.ParseInt(*self.Number, 0, 64)
		if err == nil {
			return int_value, nil
		}
		float_value, err := strconv.ParseFloat(*self.Number, 64)
		if err != nil {
			return nil, errors.Wrap(err, "Invalid number")
		}
		return float_value, nil

	case self.Boolean != nil:
		return *self.Boolean == "TRUE", nil

	case self.Null:
		return types.Null{}, nil
	}

	return nil, errors.New("Empty term")
}

// Identifiers may be quoted with backticks to allow any character.
func columnName(name string) string {
	return strings.ReplaceAll(name, "`", "")
}
