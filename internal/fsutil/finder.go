// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"strings"
)

// FindNamesByExtension lists the entries directly inside dir whose names end
// with the specified extension. Subdirectories are not descended into. The
// names are returned in the order the directory yields them.
func FindNamesByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), extension) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
