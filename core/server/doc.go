// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application; this package only defines
// the settings it is built from: the listen port, the API key required by
// the auth middleware and the request body limit.
package server
