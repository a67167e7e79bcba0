// Package server serves a directory tree over plain HTTP.
//
// Files are mapped from the request path relative to the root directory.
// Directories without an index.html get a listing, missing paths get a 404.
// Every response is logged at info level.
package server
