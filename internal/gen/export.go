package gen

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"bridge-generator/internal/proxy"
)

// ModelExport is the serialized form of one pass's renderer-ready output.
// External emitters consume it instead of re-running analysis.
type ModelExport struct {
	// Version of the export format.
	Version int `msgpack:"version"`
	// Proxies in the same stable order the emitter sees.
	Proxies []proxy.ProxyModel `msgpack:"proxies"`
}

// ExportVersion is bumped whenever the ProxyModel shape changes.
const ExportVersion = 1

// EncodeModels serializes proxy models for an external emitter.
func EncodeModels(proxies []proxy.ProxyModel) ([]byte, error) {
	data, err := msgpack.Marshal(&ModelExport{
		Version: ExportVersion,
		Proxies: proxies,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding model export: %w", err)
	}

	return data, nil
}

// DecodeModels deserializes a model export.
func DecodeModels(data []byte) ([]proxy.ProxyModel, error) {
	var export ModelExport

	if err := msgpack.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decoding model export: %w", err)
	}

	if export.Version != ExportVersion {
		return nil, fmt.Errorf("unsupported model export version %d", export.Version)
	}

	return export.Proxies, nil
}

// WriteModels writes the serialized model export to a file.
func WriteModels(proxies []proxy.ProxyModel, path string) error {
	data, err := EncodeModels(proxies)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing model export %s: %w", path, err)
	}

	return nil
}
