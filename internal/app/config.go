package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vk/taskorder/internal/render"
)

// Defaults used when neither a flag, a config file nor the environment
// provides a value.
const (
	DefaultPort          = 5000
	DefaultProject       = "default"
	DefaultRemoteTimeout = 10 * time.Second
)

// Config holds all the necessary configuration for an App instance to run.
// Server fields left at their zero value are filled from the config file,
// then from the environment, then from defaults.
type Config struct {
	TaskPaths []string
	Project   string
	Output    string

	RemoteURL     string
	RemoteTimeout time.Duration

	Serve           bool
	ConfigPath      string
	Host            string
	Port            int
	HealthcheckPort int
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Serve {
		if len(cfg.TaskPaths) > 0 {
			return nil, errors.New("task paths cannot be combined with -serve")
		}
		if cfg.RemoteURL != "" {
			return nil, errors.New("-remote cannot be combined with -serve")
		}
	} else if len(cfg.TaskPaths) == 0 {
		return nil, errors.New("at least one task file or directory is required")
	}

	if cfg.Output == "" {
		cfg.Output = render.FormatText
	}
	if !slices.Contains(render.Formats, cfg.Output) {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Output)
	}
	if err := checkPort("port", cfg.Port); err != nil {
		return nil, err
	}
	if err := checkPort("healthcheck-port", cfg.HealthcheckPort); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout < 0 || cfg.WriteTimeout < 0 || cfg.RemoteTimeout < 0 {
		return nil, errors.New("timeouts must not be negative")
	}
	if cfg.RemoteTimeout == 0 {
		cfg.RemoteTimeout = DefaultRemoteTimeout
	}

	return &cfg, nil
}

func checkPort(name string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid %s %d: must be between 0 and 65535", name, port)
	}
	return nil
}
