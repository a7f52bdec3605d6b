package boundary

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int
	label string
}

func (c *counter) Inc(by int) int {
	c.Count += by
	return c.Count
}

func (c *counter) Fail(msg string) (int, error) {
	if msg != "" {
		return 0, errors.New(msg)
	}

	return c.Count, nil
}

func (c *counter) Join(sep string, parts ...string) string {
	return strings.Join(parts, sep)
}

func (c *counter) Merge(other *counter) int {
	return c.Count + other.Count
}

func TestLocalCall(t *testing.T) {
	ref := NewLocal(&counter{Count: 1})

	out, err := ref.Call("Inc", 2)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0])
}

func TestLocalCallSplitsTrailingError(t *testing.T) {
	ref := NewLocal(&counter{Count: 7})

	out, err := ref.Call("Fail", "")
	require.NoError(t, err)
	require.Len(t, out, 1, "the error channel is not a result")
	assert.Equal(t, 7, out[0])

	_, err = ref.Call("Fail", "boom")
	require.EqualError(t, err, "boom")
}

func TestLocalCallVariadic(t *testing.T) {
	ref := NewLocal(&counter{})

	// Bridges forward the variadic tail as a single slice argument.
	out, err := ref.Call("Join", "-", []any{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "a-b-c", out[0])
}

func TestLocalCallUnwrapsRefArguments(t *testing.T) {
	ref := NewLocal(&counter{Count: 2})
	other := NewLocal(&counter{Count: 40})

	out, err := ref.Call("Merge", other)
	require.NoError(t, err)
	assert.Equal(t, 42, out[0])
}

func TestLocalCallErrors(t *testing.T) {
	ref := NewLocal(&counter{})

	_, err := ref.Call("Nope")
	require.ErrorContains(t, err, "not found")

	_, err = ref.Call("Inc")
	require.ErrorContains(t, err, "expects 1 arguments")

	_, err = ref.Call("Inc", struct{}{})
	require.ErrorContains(t, err, "cannot pass")
}

func TestLocalGetSet(t *testing.T) {
	c := &counter{Count: 5}
	ref := NewLocal(c)

	v, err := ref.Get("Count")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	require.NoError(t, ref.Set("Count", 9))
	assert.Equal(t, 9, c.Count)

	_, err = ref.Get("Missing")
	require.Error(t, err)

	// Unexported fields stay out of reach.
	require.Error(t, ref.Set("label", "x"))
}

func TestWrapAndUnwrap(t *testing.T) {
	ref := NewLocal(&counter{})

	assert.Same(t, Ref(ref), Wrap(ref), "refs pass through Wrap")
	assert.Nil(t, Wrap(nil))

	local, ok := Wrap(&counter{Count: 3}).(*Local)
	require.True(t, ok)
	assert.Equal(t, 3, local.Target().(*counter).Count)
}

type fakeBridge struct {
	ref Ref
}

func (b *fakeBridge) BoundaryRef() Ref {
	if b == nil {
		return nil
	}

	return b.ref
}

func TestUnwrap(t *testing.T) {
	ref := NewLocal(&counter{})

	assert.Equal(t, any(ref), Unwrap(&fakeBridge{ref: ref}))
	assert.Nil(t, Unwrap((*fakeBridge)(nil)))

	args := UnwrapSlice([]*fakeBridge{{ref: ref}, nil})
	require.Len(t, args, 2)
	assert.Equal(t, any(ref), args[0])
	assert.Nil(t, args[1])
}

func TestMustHelpersPanic(t *testing.T) {
	ref := NewLocal(&counter{})

	assert.Panics(t, func() { MustCall(ref, "Nope") })
	assert.Panics(t, func() { MustGet(ref, "Missing") })
	assert.Panics(t, func() { MustSet(ref, "Missing", 1) })

	assert.NotPanics(t, func() {
		out := MustCall(ref, "Inc", 1)
		assert.Equal(t, 1, out[0])
	})
}

func TestSlice(t *testing.T) {
	assert.Nil(t, Slice(nil))
	assert.Equal(t, []any{1, 2}, Slice([]int{1, 2}))
	assert.Equal(t, []any{"x"}, Slice("x"))
}
