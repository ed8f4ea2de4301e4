// Package cli provides the interactive hackorsnooze command-line client.
//
// It wires configuration, logging, the local credential database, the remote
// API client and the session, then runs a REPL over stdin. On start the
// session is bootstrapped: a remembered login is restored if the remote
// still accepts it, and the story list is loaded.
//
// Key features:
//   - Signup / Login / Logout, with the login remembered across runs
//   - List all stories, favorites and the user's own stories
//   - Submit and delete stories
//   - Favorite, unfavorite and star (toggle) stories
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
