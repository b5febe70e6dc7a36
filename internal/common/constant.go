// Package common contains shared constants and sentinel errors used across
// TaskTracker components.
package common

// SessionCookieName is the name of the cookie carrying the signed session token.
const SessionCookieName = "tasktracker_session"

// RequestIDHeaderName is the response header echoing the request id assigned
// by the HTTP logging middleware.
const RequestIDHeaderName = "X-Request-Id"
