package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vk/widgetserve/internal/app"
	"github.com/vk/widgetserve/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		logFormat string
		logLevel  string
		parsed    *app.Config
	)

	cmd := &cobra.Command{
		Use:   "widgetserve",
		Short: "Generate the widget manifest and serve the current directory",
		Long: `widgetserve - local development server for widget dashboards.

On start it scans ./widgets for *.js files, writes their names to
./widgets.json, serves the current directory on http://localhost:8080
and opens a browser tab shortly after.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := app.NewConfig(app.Config{
				LogFormat: strings.ToLower(logFormat),
				LogLevel:  strings.ToLower(logLevel),
				Site:      config.Default(),
			})
			if err != nil {
				return err
			}
			parsed = cfg
			return nil
		},
	}
	cmd.SetOut(output)
	cmd.SetErr(output)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Help was printed and RunE never ran.
	if parsed == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", parsed)
	return parsed, false, nil
}
