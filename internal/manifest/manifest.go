package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/widgetserve/internal/config"
	"github.com/vk/widgetserve/internal/fsutil"
)

// ErrSourceDirMissing is returned when the script directory does not exist.
var ErrSourceDirMissing = errors.New("source directory not found")

// Scan returns the sorted base names of the files in dir ending with ext,
// skipping any filename listed in exclude.
func Scan(dir, ext string, exclude []string) ([]string, error) {
	files, err := fsutil.FindNamesByExtension(dir, ext)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceDirMissing, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if slices.Contains(exclude, f) {
			continue
		}
		names = append(names, strings.TrimSuffix(f, ext))
	}
	slices.Sort(names)
	return names, nil
}

// Encode serializes names as a compact JSON array. A nil slice encodes as [].
func Encode(names []string) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// Write replaces the file at path with the encoded names. The data is written
// to a temporary file next to path and renamed into place, so a failure
// leaves the previous manifest intact.
func Write(path string, names []string) error {
	data, err := Encode(names)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Generate scans cfg.ScriptDir and writes the manifest to cfg.ManifestPath.
// Nothing is written when the scan fails.
func Generate(cfg config.Config) ([]string, error) {
	names, err := Scan(cfg.ScriptDir, cfg.ScriptExt, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if err := Write(cfg.ManifestPath, names); err != nil {
		return nil, err
	}
	return names, nil
}
