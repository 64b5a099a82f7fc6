package types

import (
	"sync/atomic"

	"github.com/Velocidex/ordereddict"
)

// A lightweight struct for accumulating general stats.
type Stats struct {
	// All rows offered to the predicate engine.
	_RowsScanned uint64

	// Rows which passed all the filters.
	_RowsMatched uint64

	// Number of row comparisons made while sorting.
	_Comparisons uint64

	// Total search for operator protocols.
	_ProtocolSearch uint64
}

func (self *Stats) IncRowsScanned() {
	atomic.AddUint64(&self._RowsScanned, uint64(1))
}

func (self *Stats) IncRowsMatched() {
	atomic.AddUint64(&self._RowsMatched, uint64(1))
}

func (self *Stats) IncComparisons() {
	atomic.AddUint64(&self._Comparisons, uint64(1))
}

func (self *Stats) IncProtocolSearch(i int) {
	atomic.AddUint64(&self._ProtocolSearch, uint64(i))
}

func (self *Stats) Snapshot() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("RowsScanned", atomic.LoadUint64(&self._RowsScanned)).
		Set("RowsMatched", atomic.LoadUint64(&self._RowsMatched)).
		Set("Comparisons", atomic.LoadUint64(&self._Comparisons)).
		Set("ProtocolSearch", atomic.LoadUint64(&self._ProtocolSearch))
}
