// Package cli provides the interactive TaskTracker command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// Typical flow: log in (or register), then list, add, edit and delete tasks.
//
// Key features:
//   - Register / Login / Logout, session kept in a cookie jar
//   - List tasks with optional status and priority filters
//   - Add, complete, edit and delete tasks
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
