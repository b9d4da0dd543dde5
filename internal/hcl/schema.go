package hcl

import "github.com/zclconf/go-cty/cty"

// fileRoot is decoded from every task file.
type fileRoot struct {
	Project *string      `hcl:"project,optional"`
	Tasks   []*taskBlock `hcl:"task,block"`
	Server  *serverBlock `hcl:"server,block"`
}

type taskBlock struct {
	Title          string    `hcl:"title,label"`
	DueDate        string    `hcl:"due_date"`
	EstimatedHours cty.Value `hcl:"estimated_hours"`
	DependsOn      []string  `hcl:"depends_on,optional"`
}

type serverBlock struct {
	Port            *int     `hcl:"port,optional"`
	HealthcheckPort *int     `hcl:"healthcheck_port,optional"`
	AllowedOrigins  []string `hcl:"allowed_origins,optional"`
	ReadTimeout     *string  `hcl:"read_timeout,optional"`
	WriteTimeout    *string  `hcl:"write_timeout,optional"`
}
