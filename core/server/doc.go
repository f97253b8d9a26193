// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from it: listen port, the API
// key enforced by the auth middleware, the graceful shutdown bound and the size
// of the reconcile history served by the teams feature.
package server
