// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown on SIGINT, SIGTERM, and SIGQUIT.
package server
