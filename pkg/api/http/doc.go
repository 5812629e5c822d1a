// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Service identification (root)
//   - Health checks
//   - Prometheus metrics
//
// Every route is wrapped by request ID, logging and metrics middleware.
package http
