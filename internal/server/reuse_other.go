//go:build !unix

package server

import "syscall"

// On Windows SO_REUSEADDR lets a second process steal a bound port, so the
// platform default is kept.
func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
