package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Config holds the fixed settings of a widgetserve process.
type Config struct {
	Port int    // TCP port, bound on all interfaces
	Root string // directory served over HTTP

	ScriptDir    string   // directory scanned for scripts
	ScriptExt    string   // recognized script suffix, including the dot
	Exclude      []string // filenames (with suffix) never listed
	ManifestPath string   // where the JSON manifest is written

	BrowserDelay time.Duration
}

// Default returns the configuration the binary runs with.
func Default() Config {
	return Config{
		Port:         8080,
		Root:         ".",
		ScriptDir:    "widgets",
		ScriptExt:    ".js",
		Exclude:      []string{"base.js", "utils.js"},
		ManifestPath: "widgets.json",
		BrowserDelay: 1200 * time.Millisecond,
	}
}

// Validate reports the first field that cannot be used.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.Root == "" {
		return errors.New("root directory cannot be empty")
	}
	if c.ScriptDir == "" {
		return errors.New("script directory cannot be empty")
	}
	if c.ScriptExt == "" {
		return errors.New("script extension cannot be empty")
	}
	if c.ManifestPath == "" {
		return errors.New("manifest path cannot be empty")
	}
	if c.BrowserDelay < 0 {
		return fmt.Errorf("browser delay %s is negative", c.BrowserDelay)
	}
	return nil
}

// IsExcluded matches name against the exclusion set by exact filename.
func (c Config) IsExcluded(name string) bool {
	return slices.Contains(c.Exclude, name)
}

// Addr is the listen address for all interfaces.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// URL is the address opened in the browser.
func (c Config) URL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
