package config

import (
	"time"

	"github.com/vk/taskorder/internal/task"
)

// Model is the unified, format-agnostic result of reading task files.
type Model struct {
	// Project identifies the task set. Empty when no file declares one.
	Project string
	Tasks   []task.Task
	Server  *Server
}

// Server holds listener settings. Zero values mean "not set".
type Server struct {
	Port            int
	HealthcheckPort int
	AllowedOrigins  []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Merge appends other's tasks to m. The first non-empty project wins, and
// server settings are merged field by field with m taking precedence.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if m.Project == "" {
		m.Project = other.Project
	}
	if other.Tasks != nil {
		if m.Tasks == nil {
			m.Tasks = []task.Task{}
		}
		m.Tasks = append(m.Tasks, other.Tasks...)
	}
	if other.Server != nil {
		if m.Server == nil {
			m.Server = &Server{}
		}
		m.Server.merge(other.Server)
	}
}

func (s *Server) merge(other *Server) {
	if s.Port == 0 {
		s.Port = other.Port
	}
	if s.HealthcheckPort == 0 {
		s.HealthcheckPort = other.HealthcheckPort
	}
	if len(s.AllowedOrigins) == 0 {
		s.AllowedOrigins = other.AllowedOrigins
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = other.ReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = other.WriteTimeout
	}
}
