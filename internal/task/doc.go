// Package task defines the Task entity that flows from every input surface
// (HTTP, socket.io, task files) into the scheduler.
package task
