package config

import (
	"fmt"
	"time"

	"github.com/vk/taskorder/internal/task"
)

// Document is the tree shape shared by the JSON and YAML task files.
type Document struct {
	Project string          `json:"project" yaml:"project"`
	Tasks   []task.Record   `json:"tasks" yaml:"tasks"`
	Server  *ServerDocument `json:"server,omitempty" yaml:"server,omitempty"`
}

// ServerDocument is the serialized form of Server. Timeouts use
// time.ParseDuration syntax ("30s", "1m").
type ServerDocument struct {
	Port            int      `json:"port" yaml:"port"`
	HealthcheckPort int      `json:"healthcheck_port" yaml:"healthcheck_port"`
	AllowedOrigins  []string `json:"allowed_origins" yaml:"allowed_origins"`
	ReadTimeout     string   `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    string   `json:"write_timeout" yaml:"write_timeout"`
}

// Model converts the document. path is used for error messages only.
func (d *Document) Model(path string) (*Model, error) {
	tasks, err := task.FromRecords(d.Tasks)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m := &Model{Project: d.Project, Tasks: tasks}
	if d.Server != nil {
		srv, err := d.Server.server()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		m.Server = srv
	}
	return m, nil
}

func (d *ServerDocument) server() (*Server, error) {
	read, err := ParseTimeout("read_timeout", d.ReadTimeout)
	if err != nil {
		return nil, err
	}
	write, err := ParseTimeout("write_timeout", d.WriteTimeout)
	if err != nil {
		return nil, err
	}
	return &Server{
		Port:            d.Port,
		HealthcheckPort: d.HealthcheckPort,
		AllowedOrigins:  d.AllowedOrigins,
		ReadTimeout:     read,
		WriteTimeout:    write,
	}, nil
}

// ParseTimeout parses a duration attribute. An empty string yields zero.
func ParseTimeout(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, s)
	}
	return d, nil
}
