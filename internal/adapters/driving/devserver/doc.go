// Package devserver is the local development HTTP server.
//
// It serves a workspace directory with an optional history-API
// fallback for client-side routing, pushes live-reload events to
// connected browsers over SSE, and exposes a small introspection
// surface under /__webrig/: healthz, metrics, events and the public
// subset of the loaded dotenv values.
//
// The server is a development tool. It binds loopback by default and
// is not meant to face the internet.
package devserver
