package protocols

import "www.velocidex.com/golang/vgrid/types"

// Protocol implementations installed into every new environment.
// Commonly used types (strings, numbers, times, dicts and maps) are
// inlined into the dispatchers for performance.
func GetBuiltinTypes() []types.Any {
	return []types.Any{
		_DictEq{},
	}
}
