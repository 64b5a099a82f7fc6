package scope

import (
	"io"
	"log"
	"sync"

	"www.velocidex.com/golang/vgrid/protocols"
	"www.velocidex.com/golang/vgrid/types"
)

/*
The scope is the common environment passed to the field resolver and
to the filter and sort engines.

It carries the protocol implementations used to compare values and
to look up fields inside rows, the detail row configuration and the
loggers. Clients may add protocol implementations (see
AddProtocolImpl) to teach the engines about their own row or cell
types before filtering or sorting.
*/
type Scope struct {
	sync.Mutex

	config types.Config

	// The dispatcher contains all items that are shared with
	// copies of this scope.
	dispatcher *protocolDispatcher
}

func (self *Scope) SetLogger(logger *log.Logger) {
	self.dispatcher.Lock()
	defer self.dispatcher.Unlock()
	self.dispatcher.Logger = logger
}

func (self *Scope) SetTracer(logger *log.Logger) {
	self.dispatcher.Lock()
	defer self.dispatcher.Unlock()
	self.dispatcher.Tracer = logger
}

// Explainers are shared with copies of this scope.
func (self *Scope) SetExplainer(explainer types.Explainer) {
	self.dispatcher.SetExplainer(explainer)
}

func (self *Scope) GetExplainer() types.Explainer {
	return self.dispatcher.GetExplainer()
}

func (self *Scope) GetLogger() *log.Logger {
	return self.dispatcher.GetLogger()
}

func (self *Scope) SetConfig(config types.Config) {
	self.Lock()
	defer self.Unlock()
	self.config = config.Normalize()
}

func (self *Scope) GetConfig() types.Config {
	self.Lock()
	defer self.Unlock()
	return self.config
}

func (self *Scope) GetStats() *types.Stats {
	return self.dispatcher.GetStats()
}

// Are a and b equal?
func (self *Scope) Eq(a types.Any, b types.Any) bool {
	return self.dispatcher.eq.Eq(self, a, b)
}

// Three way comparison of a and b. Returns false when the values
// have no natural ordering.
func (self *Scope) Compare(a types.Any, b types.Any) (int, bool) {
	return self.dispatcher.compare.Compare(self, a, b)
}

// Get the field b from object a.
func (self *Scope) Associative(a types.Any, b types.Any) (types.Any, bool) {
	return self.dispatcher.associative.Associative(self, a, b)
}

// A copy of the scope with its own stats. Protocol implementations
// added to the copy do not affect this scope.
func (self *Scope) Copy() *Scope {
	return &Scope{
		config:     self.GetConfig(),
		dispatcher: self.dispatcher.Copy(),
	}
}

func (self *Scope) AddProtocolImpl(implementations ...types.Any) *Scope {
	self.dispatcher.AddProtocolImpl(implementations...)
	return self
}

func (self *Scope) Log(format string, a ...interface{}) {
	self.dispatcher.Log(format, a...)
}

func (self *Scope) Trace(format string, a ...interface{}) {
	self.dispatcher.Trace("TRACE:"+format, a...)
}

// Create a new scope with the builtin protocols and the default
// configuration. Logging is discarded until a logger is set.
func NewScope() *Scope {
	result := &Scope{
		config:     types.DefaultConfig(),
		dispatcher: newProtocolDispatcher(),
	}
	result.AddProtocolImpl(protocols.GetBuiltinTypes()...)

	return result
}

// A logger which discards everything, useful for tests which only
// want to know that logging happened.
func NewDiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
