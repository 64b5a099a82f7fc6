package scope

import (
	"fmt"
	"log"
	"sync"

	"www.velocidex.com/golang/vgrid/protocols"
	"www.velocidex.com/golang/vgrid/types"
	"www.velocidex.com/golang/vgrid/utils"
)

// Pull out the dispatcher into its own object so scopes sharing the
// same protocols and loggers are cheap to copy.
type protocolDispatcher struct {
	sync.Mutex

	Stats *types.Stats

	// Protocol dispatchers control how values are compared and
	// how fields are extracted from rows.
	eq          protocols.EqDispatcher
	compare     protocols.CompareDispatcher
	associative protocols.AssociativeDispatcher

	Logger *log.Logger

	// Very verbose debugging goes here - not generally useful
	// unless users try to debug why a filter does not match.
	Tracer *log.Logger

	explainer types.Explainer
}

func (self *protocolDispatcher) GetLogger() *log.Logger {
	self.Lock()
	defer self.Unlock()

	return self.Logger
}

func (self *protocolDispatcher) GetExplainer() types.Explainer {
	self.Lock()
	defer self.Unlock()

	return self.explainer
}

func (self *protocolDispatcher) SetExplainer(explainer types.Explainer) {
	self.Lock()
	defer self.Unlock()

	self.explainer = explainer
}

func (self *protocolDispatcher) GetStats() *types.Stats {
	self.Lock()
	defer self.Unlock()

	return self.Stats
}

func (self *protocolDispatcher) Copy() *protocolDispatcher {
	self.Lock()
	defer self.Unlock()

	return &protocolDispatcher{
		Stats:       &types.Stats{},
		eq:          self.eq.Copy(),
		compare:     self.compare.Copy(),
		associative: self.associative.Copy(),
		Logger:      self.Logger,
		Tracer:      self.Tracer,
		explainer:   self.explainer,
	}
}

func (self *protocolDispatcher) Log(format string, a ...interface{}) {
	self.Lock()
	logger := self.Logger
	self.Unlock()

	if logger != nil {
		msg := fmt.Sprintf(format, a...)
		logger.Print(msg)
	}
}

func (self *protocolDispatcher) Trace(format string, a ...interface{}) {
	self.Lock()
	tracer := self.Tracer
	self.Unlock()

	if tracer != nil {
		msg := fmt.Sprintf(format, a...)
		tracer.Print(msg)
	}
}

// Add various protocol implementations into this
// scope. Implementations must be one of the supported protocols or
// this function will panic.
func (self *protocolDispatcher) AddProtocolImpl(implementations ...types.Any) {
	self.Lock()
	defer self.Unlock()

	for _, imp := range implementations {
		matched := false
		if t, ok := imp.(protocols.EqProtocol); ok {
			self.eq.AddImpl(t)
			matched = true
		}
		if t, ok := imp.(protocols.CompareProtocol); ok {
			self.compare.AddImpl(t)
			matched = true
		}
		if t, ok := imp.(protocols.AssociativeProtocol); ok {
			self.associative.AddImpl(t)
			matched = true
		}

		if !matched {
			utils.Debug(imp)
			panic(fmt.Sprintf("Unsupported interface: %T", imp))
		}
	}
}

func newProtocolDispatcher() *protocolDispatcher {
	return &protocolDispatcher{
		Stats: &types.Stats{},
	}
}
