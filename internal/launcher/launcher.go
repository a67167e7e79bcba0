// Package launcher opens the served site in the user's browser once, after a
// fixed delay, without blocking server startup.
package launcher

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/browser"

	"github.com/vk/widgetserve/internal/ctxlog"
)

// Opener opens url somewhere the user can see it.
type Opener func(url string) error

// DefaultOpener opens url in a new tab of the default web browser.
func DefaultOpener(url string) error {
	return browser.OpenURL(url)
}

// Launcher fires a single delayed Opener call. It moves from pending to
// fired exactly once and never back.
type Launcher struct {
	delay time.Duration
	open  Opener
	fired atomic.Bool
}

// New returns a pending Launcher. A nil opener means DefaultOpener.
func New(delay time.Duration, open Opener) *Launcher {
	if open == nil {
		open = DefaultOpener
	}
	return &Launcher{delay: delay, open: open}
}

// Schedule arms a timer that opens url after the launcher's delay. Open
// failures are logged and otherwise ignored. Cancelling ctx before the timer
// fires disarms it, as does calling the returned stop function; stop reports
// whether it prevented the call.
func (l *Launcher) Schedule(ctx context.Context, url string) (stop func() bool) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Browser launch scheduled.", "url", url, "delay", l.delay)

	timer := time.AfterFunc(l.delay, func() {
		if !l.fired.CompareAndSwap(false, true) {
			return
		}
		logger.Debug("Opening browser.", "url", url)
		if err := l.open(url); err != nil {
			logger.Warn("Could not open browser", "url", url, "error", err)
		}
	})
	unwatch := context.AfterFunc(ctx, func() { timer.Stop() })

	return func() bool {
		unwatch()
		return timer.Stop()
	}
}

// Fired reports whether the opener has been invoked.
func (l *Launcher) Fired() bool {
	return l.fired.Load()
}
