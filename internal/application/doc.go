// Package application provides dependency wiring for the configuration
// inspection server. It encapsulates the creation of the handler, router, and
// HTTP server instances, keeping the main package focused on CLI parsing and
// orchestration.
package application
