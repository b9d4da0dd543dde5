package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/fsutil"
)

// MultiLoader dispatches files to a Loader chosen by file extension.
type MultiLoader struct {
	byExt map[string]Loader
}

var _ Loader = (*MultiLoader)(nil)

// NewMultiLoader creates a loader from an extension map such as
// {".hcl": hclLoader, ".yaml": yamlLoader}. Extensions are matched
// case-insensitively.
func NewMultiLoader(byExt map[string]Loader) *MultiLoader {
	m := &MultiLoader{byExt: make(map[string]Loader, len(byExt))}
	for ext, l := range byExt {
		m.byExt[strings.ToLower(ext)] = l
	}
	return m
}

// Extensions returns the registered extensions, sorted.
func (m *MultiLoader) Extensions() []string {
	exts := make([]string, 0, len(m.byExt))
	for ext := range m.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load expands directories recursively and merges every matching file in
// the order the paths were given. Files inside a directory are read in
// lexical order. An explicitly named file must have a known extension.
func (m *MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := m.resolve(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no task files found in %s", strings.Join(paths, ", "))
	}

	model := &Model{}
	for _, file := range files {
		loader := m.byExt[strings.ToLower(filepath.Ext(file))]
		logger.Debug("Loading task file.", "path", file)
		part, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}
	logger.Debug("Task files loaded.", "files", len(files), "tasks", len(model.Tasks))
	return model, nil
}

func (m *MultiLoader) resolve(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}
		if !info.IsDir() {
			if _, ok := m.byExt[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil, fmt.Errorf("unsupported task file %s: expected one of %s", path, strings.Join(m.Extensions(), ", "))
			}
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, m.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", path, err)
		}
		files = append(files, found...)
	}
	return files, nil
}
