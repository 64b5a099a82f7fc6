// Package explain reports why rows were kept or dropped.
package explain

import (
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/alecthomas/repr"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// A LoggingExplainer writes its explanations to the environment's
// logger.
type LoggingExplainer struct {
	env types.Environment
}

func NewLoggingExplainer(env types.Environment) *LoggingExplainer {
	return &LoggingExplainer{env: env}
}

func (self *LoggingExplainer) StartFilter(filters []types.Filter) {
	if len(filters) == 0 {
		self.env.Log("DEBUG:Explain filters: none")
		return
	}

	descriptions := make([]string, 0, len(filters))
	for _, filter := range filters {
		descriptions = append(descriptions, describeFilter(filter))
	}
	self.env.Log("DEBUG:Explain filters: %v", strings.Join(descriptions, ", "))
}

func (self *LoggingExplainer) RejectRow(
	row types.Row, filter types.Filter, value types.Any) {
	self.env.Log("DEBUG: REJECTED row %v by %v (value %v)",
		describeRow(row), describeFilter(filter),
		utils.ToDisplayString(value))
}

func (self *LoggingExplainer) AcceptRow(row types.Row) {
	self.env.Log("DEBUG: ACCEPTED row %v", describeRow(row))
}

func (self *LoggingExplainer) StartSort(keys []types.SortKey) {
	if len(keys) == 0 {
		self.env.Log("DEBUG:Explain sort: none")
		return
	}

	descriptions := make([]string, 0, len(keys))
	for _, key := range keys {
		descriptions = append(descriptions, key.ColumnId+" "+key.Direction.String())
	}
	self.env.Log("DEBUG:Explain sort: %v", strings.Join(descriptions, ", "))
}

func describeFilter(filter types.Filter) string {
	terms := make([]string, 0, len(filter.SearchTerms))
	for _, term := range filter.SearchTerms {
		terms = append(terms, utils.ToDisplayString(term))
	}
	return filter.ColumnId + " " + filter.Operator.String() +
		" [" + strings.Join(terms, ", ") + "]"
}

func describeRow(row types.Row) string {
	dict, ok := row.(*ordereddict.Dict)
	if !ok {
		return repr.String(row, repr.NoIndent(),
			repr.OmitEmpty(true), repr.IgnorePrivate())
	}

	fields := make([]string, 0, dict.Len())
	for _, key := range dict.Keys() {
		value, _ := dict.Get(key)
		fields = append(fields, key+"="+utils.ToDisplayString(value))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}
