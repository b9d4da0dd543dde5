// Package yamlconf reads YAML task files into a config.Model.
//
// The document uses the same keys as the JSON request body:
//
//	project: launch
//	tasks:
//	  - title: Design
//	    dueDate: "2024-01-05"
//	    estimatedHours: 4
//	server:
//	  port: 8080
package yamlconf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/taskorder/internal/config"
	"github.com/vk/taskorder/internal/ctxlog"
)

// Loader implements config.Loader for .yaml and .yml files.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a YAML task file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and merges each path in order. An empty file contributes nothing.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}

		var doc config.Document
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		part, err := doc.Model(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("Decoded YAML task file.", "path", path, "tasks", len(part.Tasks))
		model.Merge(part)
	}
	return model, nil
}
