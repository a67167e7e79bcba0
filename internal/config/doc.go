// Package config defines the immutable site configuration shared by the
// manifest generator, the static server and the browser launcher.
//
// A Config is built once at startup with Default and passed by value to the
// components that need it. None of its fields are read from flags, the
// environment or a file.
package config
