package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "bridges")

	files := []GeneratedFile{
		{Filename: "sci_bridge.go", Content: []byte("package bridges\n")},
		{Filename: "basic_bridge.go", Content: []byte("package bridges\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)
	}
}

func TestWriteModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.msgpack")

	require.NoError(t, WriteModels(fixtureProxies(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	decoded, err := DecodeModels(data)
	require.NoError(t, err)
	assert.Len(t, decoded, 2)
}
