// Package backend serves the remote side of the blog generation contract so
// the client can be exercised end to end without a deployed gateway.
//
// A Handler accepts {"blog_topic": "..."} (optionally JSON-encoded a second
// time), asks each configured Model in turn for a 200-word post, strips
// instruction-template artifacts from the output and answers with
// {"message", "generated", "content"}. With ProxyEnvelope set the answer is
// wrapped the way a serverless proxy integration returns it, with the payload
// JSON-encoded under "body".
package backend
