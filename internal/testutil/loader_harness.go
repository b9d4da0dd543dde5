package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskorder/internal/config"
)

// LoaderTestCase defines a single scenario for a task file loader.
type LoaderTestCase struct {
	Name string
	// File is the file name written to a temporary directory, e.g. "tasks.hcl".
	File string
	// Content may be written as a readable, indented multi-line string.
	Content string
	// ErrContains, when set, is a substring the load error must contain.
	ErrContains string
	// Validate performs assertions on a successfully loaded model.
	Validate func(t *testing.T, m *config.Model)
}

// RunLoaderTests provides a reusable harness for loader tests. It writes
// each case's file, loads it and checks either the error or the model.
func RunLoaderTests(t *testing.T, loader config.Loader, cases []LoaderTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			dir := WriteFiles(t, map[string]string{tc.File: tc.Content})
			m, err := loader.Load(context.Background(), filepath.Join(dir, tc.File))

			if tc.ErrContains != "" {
				require.Error(t, err, "Expected a load error, but got none")
				require.Contains(t, err.Error(), tc.ErrContains, "Error message did not contain the expected text")
				return
			}

			require.NoError(t, err, "Expected successful load, but got an error")
			require.NotNil(t, m)
			if tc.Validate != nil {
				tc.Validate(t, m)
			}
		})
	}
}
