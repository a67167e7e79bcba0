// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Only the
// logging output can be tuned; the site itself is fixed at build time.
package cli
