// Package boundary is the small runtime generated bridges link against. A
// bridge holds a Ref, the only kind of reference allowed to cross the
// isolation boundary, and forwards every member access through it.
package boundary

import "fmt"

// Ref is a capability that may cross the isolation boundary. Everything a
// bridge does goes through one of these three entry points on the hidden
// wrapped instance.
type Ref interface {
	// Call invokes a member with the given arguments.
	Call(member string, args ...any) ([]any, error)
	// Get reads a property.
	Get(property string) (any, error)
	// Set writes a property.
	Set(property string, value any) error
}

// Wrapper is implemented by every generated bridge type.
type Wrapper interface {
	// BoundaryRef returns the ref the bridge forwards to. Nil-safe on
	// generated bridges.
	BoundaryRef() Ref
}

// Unwrap extracts the boundary ref from a bridge so it can be handed back
// across the boundary as an argument. Returns nil for a nil bridge.
func Unwrap(w Wrapper) any {
	if w == nil {
		return nil
	}

	ref := w.BoundaryRef()
	if ref == nil {
		return nil
	}

	return ref
}

// UnwrapSlice unwraps a slice of bridges into boundary-crossing arguments.
func UnwrapSlice[W Wrapper](ws []W) []any {
	out := make([]any, len(ws))
	for i, w := range ws {
		out[i] = Unwrap(w)
	}

	return out
}

// Wrap turns a value returned across the boundary into a Ref suitable for
// constructing a bridge. Values that already are refs pass through; anything
// else gets an in-process ref.
func Wrap(v any) Ref {
	if v == nil {
		return nil
	}

	if ref, ok := v.(Ref); ok {
		return ref
	}

	return NewLocal(v)
}

// MustCall is the forwarding path for members whose original signature has no
// error channel: a boundary failure there has nowhere to surface, so it
// panics.
func MustCall(ref Ref, member string, args ...any) []any {
	out, err := ref.Call(member, args...)
	if err != nil {
		panic(fmt.Errorf("boundary call %s: %w", member, err))
	}

	return out
}

// MustGet reads a property, panicking on boundary failure.
func MustGet(ref Ref, property string) any {
	v, err := ref.Get(property)
	if err != nil {
		panic(fmt.Errorf("boundary get %s: %w", property, err))
	}

	return v
}

// MustSet writes a property, panicking on boundary failure.
func MustSet(ref Ref, property string, value any) {
	if err := ref.Set(property, value); err != nil {
		panic(fmt.Errorf("boundary set %s: %w", property, err))
	}
}
