// Package server holds the HTTP server configuration.
//
// The actual Fiber application is assembled in cmd/start.go; this package only
// owns the settings (listen port, API key) so that core/config can compose them
// without importing the command layer.
package server
