package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles materializes one pass worth of rendered bridges under outputDir,
// creating the directory if needed. Filenames come from the artifact stems, so
// files within a single pass never overwrite each other; a re-run over
// unchanged input rewrites the same set byte for byte.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		path := filepath.Join(outputDir, file.Filename)

		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing %s: %w", file.Filename, err)
		}
	}

	return nil
}
