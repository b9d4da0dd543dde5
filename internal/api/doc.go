// Package api exposes the scheduler over HTTP.
//
// Routes:
//
//	POST /api/v1/projects/{projectId}/schedule  compute a recommended order
//	GET  /health                                liveness probe
//
// Every response carries CORS headers and an X-Request-ID. Errors are
// returned as {"error": "...", "code": "..."} with the status chosen by
// MapError. The same request and response types are reused by the
// socket.io transport.
package api
