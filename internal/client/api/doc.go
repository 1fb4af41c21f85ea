// Package api is the storefront's authenticated HTTP/JSON client.
//
// # Overview
//
// Client.Request issues a call against the backend, attaches the stored
// access credential as a bearer header when the call requires
// authentication, and recovers from credential expiry without surfacing it
// to the caller when recovery succeeds:
//
//	INIT -> SENT -> OK
//	             -> AUTH_FAILED -> RECOVERING -> RETRIED_OK
//	                                          -> RECOVERY_FAILED
//
// Only a 401 on a request that carried a credential enters recovery. The
// recovery cycle reads the stored refresh credential, exchanges it at the
// refresh endpoint, persists the new access credential and re-issues the
// original request exactly once. If the refresh is impossible or fails, the
// session store is cleared and the call fails with KindSessionExpired; the
// presentation layer decides how to send the user back to login.
//
// Concurrent failing requests share a single refresh call (single-flight):
// the first one starts it, the others wait for the same outcome.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind and a human-readable Message
// taken from the response body's "message", "detail" or "error" field.
// Kinds match sentinels through errors.Is: ErrUnavailable (network),
// ErrUnauthorized (401/403), ErrNotFound (404), ErrSessionExpired.
package api
