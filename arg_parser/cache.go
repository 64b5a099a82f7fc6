package arg_parser

import (
	"reflect"
	"sync"
)

var (
	// Parsers are tied to Go types so once built they never
	// change.
	mu          sync.Mutex
	parserCache = make(map[reflect.Type]*Parser)
)

// GetParser returns the parser for the struct type of target,
// building and caching it on first use.
func GetParser(target reflect.Value) (*Parser, error) {
	mu.Lock()
	defer mu.Unlock()

	t := target.Type()
	parser, pres := parserCache[t]
	if pres {
		return parser, nil
	}

	parser, err := BuildParser(target)
	if err != nil {
		return nil, err
	}
	parserCache[t] = parser
	return parser, nil
}
