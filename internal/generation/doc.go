// Package generation is the client side of the remote blog generation service.
//
// A Client turns a topic into exactly one HTTPS POST carrying
// {"blog_topic": "<topic>"}, then normalizes whichever envelope the service
// answers with into a Result. Three envelope shapes are tolerated:
//
//	flat           {"content": "...", "message": "..."}
//	flat-alt       {"blog": "...", "message": "..."}
//	proxy-wrapped  {"body": "<JSON-encoded {content, message}>"}
//
// The shape is detected structurally; when several fields are present the
// wrapped body wins over content, and content wins over blog.
//
// Every failure is returned as an *Error whose Kind places it in a small, flat
// taxonomy suitable for showing directly to an end user. The client never
// retries; callers that want another attempt call Generate again.
package generation
