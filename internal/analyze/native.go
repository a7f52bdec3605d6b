package analyze

import "bridge-generator/internal/symquery"

// builtins are the universe-independent types that cross the boundary by
// value and never need a bridge.
var builtins = map[string]bool{
	"bool": true, "string": true, "any": true, "error": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
	"byte": true, "rune": true,
}

// forbidden are the reference-disallowed kinds: they can neither cross the
// boundary by value nor hold a boundary capability.
var forbidden = map[string]bool{
	"uintptr":        true,
	"unsafe.Pointer": true,
}

// stdPassable lists well-known library types serialized by value at the
// boundary.
var stdPassable = map[string]bool{
	"time.Time":     true,
	"time.Duration": true,
}

// NativelyPassable returns true if the identity crosses the boundary as a
// plain value and requires no bridge.
func NativelyPassable(id symquery.TypeIdentity) bool {
	if id.PkgPath == "" {
		return builtins[id.Name]
	}

	return stdPassable[id.PkgPath+"."+id.Name]
}

// Forbidden returns true if the identity can never cross the boundary in any
// form.
func Forbidden(id symquery.TypeIdentity) bool {
	if id.PkgPath == "" {
		return forbidden[id.Name]
	}

	return forbidden[id.PkgPath+"."+id.Name]
}
