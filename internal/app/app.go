package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/vk/widgetserve/internal/ctxlog"
	"github.com/vk/widgetserve/internal/launcher"
	"github.com/vk/widgetserve/internal/manifest"
	"github.com/vk/widgetserve/internal/server"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	launcher *launcher.Launcher
	server   *server.Server

	ready chan struct{}
	addr  net.Addr
}

// Option customizes an App.
type Option func(*appOptions)

type appOptions struct {
	opener launcher.Opener
}

// WithOpener replaces the browser opener. Used by tests and headless runs.
func WithOpener(open launcher.Opener) Option {
	return func(o *appOptions) { o.opener = open }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) *App {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		launcher: launcher.New(cfg.Site.BrowserDelay, o.opener),
		server:   server.New(cfg.Site.Root, logger),
		ready:    make(chan struct{}),
	}
}

// Run generates the manifest, binds the listener, schedules the browser and
// serves until ctx is cancelled. Only a server failure, such as the port
// being taken, is returned. Run may be called once per App.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.GenerateManifest(ctx)

	site := a.config.Site
	ln, err := server.Listen(ctx, site.Addr())
	if err != nil {
		return err
	}
	a.addr = ln.Addr()
	close(a.ready)

	url := site.URL()
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		url = fmt.Sprintf("http://localhost:%d", tcpAddr.Port)
	}
	stop := a.launcher.Schedule(ctx, url)
	defer stop()

	a.logger.Info("🌐 Server running", "url", url, "root", site.Root)
	if err := a.server.Serve(ctx, ln); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// GenerateManifest rebuilds the manifest and reports the outcome. Failures
// are logged and never returned: the server starts either way.
func (a *App) GenerateManifest(ctx context.Context) []string {
	logger := ctxlog.FromContext(ctx)
	site := a.config.Site

	logger.Info("Generating manifest...", "path", site.ManifestPath, "source", site.ScriptDir)
	names, err := manifest.Generate(site)
	switch {
	case errors.Is(err, manifest.ErrSourceDirMissing):
		logger.Warn("Script directory not found, manifest not generated.", "source", site.ScriptDir, "path", site.ManifestPath)
		return nil
	case err != nil:
		logger.Error("An error occurred while generating the manifest.", "path", site.ManifestPath, "error", err)
		return nil
	}

	logger.Info("Manifest generated successfully.", "path", site.ManifestPath, "names", names)
	return names
}

// Ready is closed once the listener is bound.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Addr is the bound listen address. It is nil until Ready is closed.
func (a *App) Addr() net.Addr {
	return a.addr
}

// Launcher returns the browser launcher. This is primarily for testing.
func (a *App) Launcher() *launcher.Launcher {
	return a.launcher
}
