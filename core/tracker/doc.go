// Package tracker is the client for the issue tracker's REST and agile APIs.
//
// The Client interface covers exactly the reads used to export a project's
// schema and the writes used to reconcile one. RESTClient implements it over
// net/http; core/tracker/mocks provides a testify mock for unit tests.
//
// # Errors
//
// Non-2xx responses are classified into typed errors:
//
//   - ConflictError: 400, 409 or any "already exists" message
//   - NotFoundError: 404
//   - AuthError: 401 and 403
//   - TransportError: network failures and everything else
//
// IsConflict is the check callers use to treat a duplicate as "skipped".
//
// # Retries
//
// Reads (GET) are retried with exponential backoff on network errors, 429 and
// 5xx responses, bounded by Config.MaxRetrySeconds. Writes are never retried,
// because a write that timed out may still have been applied.
package tracker
