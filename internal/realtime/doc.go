// Package realtime carries schedule requests over socket.io.
//
// A client emits EventSchedule with {"projectId": "...", "tasks": [...]}
// and receives either EventResult with the HTTP success body or EventError
// with the HTTP error body. Server is mounted on the API listener; Submit is
// the client used by the CLI's remote mode.
package realtime

// Event names.
const (
	EventSchedule = "schedule"
	EventResult   = "schedule:result"
	EventError    = "schedule:error"
)

// DefaultPath is where the socket.io endpoint is mounted.
const DefaultPath = "/socket.io/"
