// Package client contains the client-side building blocks that talk to the
// outside world: the remote Hack-or-Snooze API and the local database.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): list,
//     create and delete stories, signup/login, profile lookup and favorite
//     add/remove.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that tags
//     every request with an X-Request-ID, applies an optional per-request
//     timeout and maps error responses to sentinel errors.
//  3. TokenUsername, which reads the username claim of a login token
//     without verifying it, so stale credentials can be spotted locally.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Error responses are returned as *APIError, which unwraps to one of
// ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrConflict,
// ErrServer. Transport failures wrap ErrUnavailable. Match with errors.Is.
//
// All operations accept a context.Context and honor cancellation.
package client
