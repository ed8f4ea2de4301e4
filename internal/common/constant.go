// Package common contains shared constants and small helpers used across
// the hackorsnooze client packages.
package common

// RequestIDHeaderName is the HTTP header that carries the per-request id
// generated for every call to the remote API.
const RequestIDHeaderName = "X-Request-ID"

// UserAgent is sent with every outbound HTTP request.
const UserAgent = "hackorsnooze-cli/1.0"
