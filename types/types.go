package types

// These are the public types exposed to package clients.

// A Generic object which may be stored in a row cell or used as a
// search term.
type Any interface{}

// A Row is one schema-less record of the grid's dataset. Rows are
// usually *ordereddict.Dict or map[string]interface{} but any value
// with a valid Associative() protocol handler may be used. The
// default associative protocol uses reflection so plain structs with
// exported fields and getter methods work out of the box.
type Row interface{}

// An Environment carries the protocols, configuration and logging
// that the field resolver and the engines evaluate with. It is
// implemented by vgrid.Grid.
type Environment interface {
	// Protocols
	Eq(a Any, b Any) bool
	Compare(a Any, b Any) (int, bool)
	Associative(a Any, b Any) (Any, bool)

	GetConfig() Config
	GetStats() *Stats

	// May return nil when nothing needs explaining.
	GetExplainer() Explainer

	// Logging
	Log(format string, a ...interface{})
	Trace(format string, a ...interface{})
}
