package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/taskorder/internal/config"
	"github.com/vk/taskorder/internal/hcl"
	"github.com/vk/taskorder/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	loader     config.Loader
	httpServer *http.Server // healthcheck listener, nil unless serving
}

// NewLoader returns the loader for every supported task file format.
func NewLoader() *config.MultiLoader {
	yamlLoader := yamlconf.NewLoader()
	return config.NewMultiLoader(map[string]config.Loader{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
		".json": config.JSONLoader{},
	})
}

// NewApp is the constructor for the main application. Results are written
// to outW and logs to logW. A nil loader selects NewLoader.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = NewLoader()
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
