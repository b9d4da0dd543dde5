// Package config defines the format-agnostic model shared by every task
// file format, together with the Loader interface implemented by the HCL,
// YAML and JSON readers.
//
// A Model carries the tasks to schedule, an optional project identifier and
// optional server settings. Several files can contribute to a single Model:
// MultiLoader expands directories, dispatches each file to the loader
// registered for its extension and merges the results in path order.
package config
