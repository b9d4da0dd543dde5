package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// JSONLoader reads task files in the same shape as the HTTP request body,
// optionally with "project" and "server" keys.
type JSONLoader struct{}

var _ Loader = (*JSONLoader)(nil)

// Load reads and merges each path in order.
func (JSONLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	model := &Model{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var doc Document
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		part, err := doc.Model(path)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}
	return model, nil
}
