// Package api exposes the generation client to a UI over HTTP. It handles
// routing, request validation and response formatting, and maps generation
// error kinds onto HTTP status codes while passing the user-facing message
// through unchanged.
package api
