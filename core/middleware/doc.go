// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation protecting every feature route.
//   - rayid: a unique Request ID (RayID) for every incoming request,
//     stored in the context and echoed in the X-Ray-ID response header.
//
// RayID must be registered before auth so that rejected requests are traced too.
package middleware
