// Package cli provides the interactive ticket tracker command-line client.
//
// It wires configuration, the local store, and the session/ticket services
// into an interactive REPL. Typical flow: restore the persisted session,
// then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - Add, edit, delete tickets with field-level validation feedback
//   - List tickets, optionally filtered by status
//   - Stats (counts by status) and the most recent tickets
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
