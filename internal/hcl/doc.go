// Package hcl provides the HCL implementation of config.Loader.
//
// A task file looks like:
//
//	project = "launch"
//
//	task "Write docs" {
//	  due_date        = "2024-01-10"
//	  estimated_hours = 2.5
//	  depends_on      = ["Design"]
//	}
//
//	server {
//	  port            = 8080
//	  allowed_origins = ["https://example.com"]
//	  read_timeout    = "15s"
//	}
//
// Every top-level item is optional. Numbers may also be written as numeric
// strings; they are coerced the same way HCL coerces any primitive.
package hcl
