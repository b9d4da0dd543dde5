package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/taskorder/internal/config"
	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/task"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL task file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses each file in order and merges the results.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range paths {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, err := translate(&root)
		if err != nil {
			return nil, fmt.Errorf("invalid HCL file %s: %w", file, err)
		}
		logger.Debug("Decoded HCL task file.", "path", file, "tasks", len(part.Tasks))
		model.Merge(part)
	}
	return model, nil
}

func translate(root *fileRoot) (*config.Model, error) {
	m := &config.Model{Project: derefString(root.Project)}
	if len(root.Tasks) > 0 {
		m.Tasks = make([]task.Task, 0, len(root.Tasks))
	}
	for _, b := range root.Tasks {
		hours, err := toFloat(b.EstimatedHours)
		if err != nil {
			return nil, fmt.Errorf("task %q: estimated_hours: %w", b.Title, err)
		}
		m.Tasks = append(m.Tasks, task.Task{
			Title:          b.Title,
			DueDate:        b.DueDate,
			EstimatedHours: hours,
			Dependencies:   b.DependsOn,
		})
	}
	if root.Server != nil {
		srv, err := translateServer(root.Server)
		if err != nil {
			return nil, err
		}
		m.Server = srv
	}
	return m, nil
}

func translateServer(b *serverBlock) (*config.Server, error) {
	read, err := config.ParseTimeout("read_timeout", derefString(b.ReadTimeout))
	if err != nil {
		return nil, err
	}
	write, err := config.ParseTimeout("write_timeout", derefString(b.WriteTimeout))
	if err != nil {
		return nil, err
	}
	return &config.Server{
		Port:            derefInt(b.Port),
		HealthcheckPort: derefInt(b.HealthcheckPort),
		AllowedOrigins:  b.AllowedOrigins,
		ReadTimeout:     read,
		WriteTimeout:    write,
	}, nil
}
