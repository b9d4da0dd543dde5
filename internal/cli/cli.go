package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/vk/taskorder/internal/app"
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

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("taskorder", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
taskorder - Orders tasks by dependency, due date and estimated effort.

Usage:
  taskorder [options] PATH...                   compute an order locally
  taskorder -remote URL [options] PATH...       submit to a running server
  taskorder -serve [options]                    run the HTTP and socket.io server

Arguments:
  PATH
    A task file (.hcl, .yaml, .yml or .json) or a directory searched recursively.

Options:
`)
		flagSet.PrintDefaults()
	}

	projectFlag := flagSet.String("project", "", "Project identifier. Overrides the one declared in task files.")
	outputFlag := flagSet.String("output", "text", "Result format. Options: 'text' or 'json'.")
	remoteFlag := flagSet.String("remote", "", "Base URL of a taskorder server to submit tasks to over socket.io.")
	remoteTimeoutFlag := flagSet.Duration("remote-timeout", app.DefaultRemoteTimeout, "How long to wait for a remote reply.")
	serveFlag := flagSet.Bool("serve", false, "Run the scheduling server instead of computing an order.")
	configFlag := flagSet.String("config", "", "Server config file (.hcl, .yaml, .yml or .json) with a 'server' block.")
	hostFlag := flagSet.String("host", "", "Interface to bind in serve mode. Empty binds all interfaces.")
	portFlag := flagSet.Int("port", 0, fmt.Sprintf("Port for the API server. 0 uses the config file, then $PORT, then %d.", app.DefaultPort))
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	originsFlag := flagSet.String("allowed-origins", "", "Comma-separated CORS origins. Empty uses the config file, then '*'.")
	readTimeoutFlag := flagSet.Duration("read-timeout", 0, "HTTP read timeout. 0 uses the config file, then 30s.")
	writeTimeoutFlag := flagSet.Duration("write-timeout", 0, "HTTP write timeout. 0 uses the config file, then 30s.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 && !*serveFlag {
		slog.Debug("No task paths provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if !slices.Contains(app.LogFormats, logFormat) {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(*logLevelFlag)
	if !slices.Contains(app.LogLevels, logLevel) {
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		TaskPaths:       paths,
		Project:         *projectFlag,
		Output:          strings.ToLower(*outputFlag),
		RemoteURL:       *remoteFlag,
		RemoteTimeout:   *remoteTimeoutFlag,
		Serve:           *serveFlag,
		ConfigPath:      *configFlag,
		Host:            *hostFlag,
		Port:            *portFlag,
		HealthcheckPort: *healthPortFlag,
		AllowedOrigins:  splitList(*originsFlag),
		ReadTimeout:     *readTimeoutFlag,
		WriteTimeout:    *writeTimeoutFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
