// Package app contains the core application logic. It wires the manifest
// generator, the static server and the browser launcher together and runs
// them in order, decoupled from any specific entrypoint like a CLI.
package app
