// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the query API.
//   - RayID: a unique request id per request, stored in the context and echoed
//     in the response headers for tracing.
package middleware
