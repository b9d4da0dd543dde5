package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskorder/internal/config"
	"github.com/vk/taskorder/internal/task"
	"github.com/vk/taskorder/internal/testutil"
)

func writeHCL(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeHCL(t, "tasks.hcl", `
project = "launch"

task "Design" {
  due_date        = "2024-01-05"
  estimated_hours = 4
}

task "Write docs" {
  due_date        = "2024-01-10"
  estimated_hours = "2.5"
  depends_on      = ["Design"]
}

server {
  port            = 8080
  allowed_origins = ["https://example.com"]
  read_timeout    = "15s"
}
`)

	m, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "launch", m.Project)
	assert.Equal(t, []task.Task{
		{Title: "Design", DueDate: "2024-01-05", EstimatedHours: 4},
		{Title: "Write docs", DueDate: "2024-01-10", EstimatedHours: 2.5, Dependencies: []string{"Design"}},
	}, m.Tasks)
	assert.Equal(t, &config.Server{
		Port:           8080,
		AllowedOrigins: []string{"https://example.com"},
		ReadTimeout:    15 * time.Second,
	}, m.Server)
}

func TestLoader_MergesFilesInOrder(t *testing.T) {
	first := writeHCL(t, "a.hcl", `
task "A" {
  due_date        = "2024-01-01"
  estimated_hours = 1
}
`)
	second := writeHCL(t, "b.hcl", `
project = "second"
task "B" {
  due_date        = "2024-01-02"
  estimated_hours = 2
  depends_on      = ["A"]
}
`)

	m, err := NewLoader().Load(context.Background(), first, second)
	require.NoError(t, err)
	assert.Equal(t, "second", m.Project)
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, "A", m.Tasks[0].Title)
	assert.Equal(t, "B", m.Tasks[1].Title)
	assert.Nil(t, m.Server)
}

func TestLoader_Errors(t *testing.T) {
	testutil.RunLoaderTests(t, NewLoader(), []testutil.LoaderTestCase{
		{
			Name:        "syntax error",
			File:        "tasks.hcl",
			Content:     `task "A" {`,
			ErrContains: "failed to parse HCL file",
		},
		{
			Name: "missing due date",
			File: "tasks.hcl",
			Content: `
				task "A" {
				  estimated_hours = 1
				}
			`,
			ErrContains: "failed to decode HCL file",
		},
		{
			Name: "unknown attribute",
			File: "tasks.hcl",
			Content: `
				task "A" {
				  due_date        = "2024-01-01"
				  estimated_hours = 1
				  priority        = "high"
				}
			`,
			ErrContains: "failed to decode HCL file",
		},
		{
			Name: "non numeric hours",
			File: "tasks.hcl",
			Content: `
				task "A" {
				  due_date        = "2024-01-01"
				  estimated_hours = "lots"
				}
			`,
			ErrContains: `task "A": estimated_hours`,
		},
		{
			Name: "bad timeout",
			File: "tasks.hcl",
			Content: `
				server {
				  write_timeout = "forever"
				}
			`,
			ErrContains: `invalid write_timeout "forever"`,
		},
		{
			Name: "server only",
			File: "server.hcl",
			Content: `
				server {
				  healthcheck_port = 9000
				}
			`,
			Validate: func(t *testing.T, m *config.Model) {
				assert.Empty(t, m.Tasks)
				require.NotNil(t, m.Server)
				assert.Equal(t, 9000, m.Server.HealthcheckPort)
			},
		},
	})
}

func TestToFloat(t *testing.T) {
	f, err := toFloat(cty.NumberFloatVal(1.25))
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)

	f, err = toFloat(cty.StringVal("3"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	_, err = toFloat(cty.NullVal(cty.Number))
	assert.ErrorContains(t, err, "null")

	_, err = toFloat(cty.UnknownVal(cty.Number))
	assert.ErrorContains(t, err, "known")

	_, err = toFloat(cty.True)
	assert.Error(t, err)
}
