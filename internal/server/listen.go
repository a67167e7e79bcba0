package server

import (
	"context"
	"fmt"
	"net"
)

// Listen binds a TCP listener on addr with SO_REUSEADDR set, so a restarted
// process can rebind while the previous socket sits in TIME_WAIT.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
