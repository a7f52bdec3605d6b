package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.True(t, IsEmpty([]string{}))
	assert.False(t, IsEmpty([]int{1}))
}

func TestFirst(t *testing.T) {
	v, ok := First([]int{7, 8})
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	v, ok = First([]int(nil))
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "calc", PkgAlias("bridge-generator/examples/calc"))
	assert.Equal(t, "time", PkgAlias("time"))
	assert.Equal(t, "", PkgAlias(""))
}
