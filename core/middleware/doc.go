// Package middleware groups the HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through the X-API-Key header. Disabled when no key is configured.
//   - rayid: assigns a request id (ray id) to every request, stores it in the
//     context locals and echoes it in the X-Ray-ID response header.
//
// The start command registers rayid first so every log line of a request carries the id.
package middleware
