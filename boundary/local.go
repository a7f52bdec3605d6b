package boundary

import (
	"fmt"
	"reflect"
)

// Local is an in-process Ref: it dispatches calls to a wrapped instance with
// reflection. It stands in for a real transport in tests and same-process
// setups, and defines the reference semantics every transport must match.
type Local struct {
	target reflect.Value
}

// NewLocal wraps a concrete instance in an in-process ref.
func NewLocal(target any) *Local {
	return &Local{target: reflect.ValueOf(target)}
}

// Target returns the wrapped instance.
func (l *Local) Target() any {
	return l.target.Interface()
}

// Call invokes a method on the wrapped instance. Bridge-unwrapped arguments
// (refs) are replaced by their wrapped instances before dispatch.
func (l *Local) Call(member string, args ...any) ([]any, error) {
	m := l.target.MethodByName(member)
	if !m.IsValid() && l.target.Kind() != reflect.Pointer && l.target.CanAddr() {
		m = l.target.Addr().MethodByName(member)
	}

	if !m.IsValid() {
		return nil, fmt.Errorf("member %q not found on %s", member, l.target.Type())
	}

	mt := m.Type()
	// Bridges forward a variadic tail as one slice argument, so the argument
	// count always matches NumIn.
	if len(args) != mt.NumIn() {
		return nil, fmt.Errorf("member %q expects %d arguments, got %d", member, mt.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		v, err := coerce(arg, mt.In(i))
		if err != nil {
			return nil, fmt.Errorf("member %q argument %d: %w", member, i, err)
		}

		in[i] = v
	}

	var outs []reflect.Value
	if mt.IsVariadic() {
		outs = m.CallSlice(in)
	} else {
		outs = m.Call(in)
	}

	results := make([]any, 0, len(outs))
	var callErr error

	for i, out := range outs {
		if i == len(outs)-1 && out.Type() == errType {
			if !out.IsNil() {
				callErr = out.Interface().(error)
			}

			continue
		}

		results = append(results, out.Interface())
	}

	return results, callErr
}

// Get reads a field or zero-argument accessor.
func (l *Local) Get(property string) (any, error) {
	v := l.target
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, fmt.Errorf("property %q on nil instance", property)
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("property %q on non-struct %s", property, v.Type())
	}

	field := v.FieldByName(property)
	if !field.IsValid() {
		return nil, fmt.Errorf("property %q not found on %s", property, v.Type())
	}

	return field.Interface(), nil
}

// Set writes a field on the wrapped instance.
func (l *Local) Set(property string, value any) error {
	v := l.target
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("property %q on nil instance", property)
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("property %q on non-struct %s", property, v.Type())
	}

	field := v.FieldByName(property)
	if !field.IsValid() || !field.CanSet() {
		return fmt.Errorf("property %q not settable on %s", property, v.Type())
	}

	coerced, err := coerce(value, field.Type())
	if err != nil {
		return fmt.Errorf("property %q: %w", property, err)
	}

	field.Set(coerced)

	return nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// coerce adapts a boundary-crossing value to the type the wrapped instance
// expects: refs become their targets, []any becomes a typed slice, and
// convertible scalars convert.
func coerce(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(want), nil
	}

	if local, ok := arg.(*Local); ok {
		arg = local.Target()
	}

	v := reflect.ValueOf(arg)

	if v.Type().AssignableTo(want) {
		return v, nil
	}

	if want.Kind() == reflect.Slice && v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Interface {
		out := reflect.MakeSlice(want, v.Len(), v.Len())
		for i := range v.Len() {
			elem, err := coerce(v.Index(i).Interface(), want.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			out.Index(i).Set(elem)
		}

		return out, nil
	}

	if v.Type().ConvertibleTo(want) {
		return v.Convert(want), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot pass %s as %s", v.Type(), want)
}

// Slice reflects a returned slice value into []any so generated code can
// rewrap each element.
func Slice(v any) []any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{v}
	}

	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}

	return out
}
