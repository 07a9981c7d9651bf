package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files below the layout's output
// directory, creating package directories as needed. It returns the written
// paths.
func WriteFiles(files []GeneratedFile, layout Layout) ([]string, error) {
	paths := make([]string, 0, len(files))

	for _, file := range files {
		p, err := layout.Path(file)
		if err != nil {
			return paths, err
		}

		if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
			return paths, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(p, file.Content, filePerm); err != nil {
			return paths, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		paths = append(paths, p)
	}

	return paths, nil
}
