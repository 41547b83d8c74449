// Package handler adapts typed request handlers to net/http.
//
// Wrap binds the request into a struct with the configured binders, calls the
// HandlerFunc and renders the returned Response. JSON, Created and NoContent
// cover success bodies. JSONError and the ErrorHandler turn HTTPError,
// ValidationError and binder failures into the error envelope
// {"error":{"code":...,"message":...}}. Anything unclassified becomes a
// 500 whose message does not leak the underlying error.
package handler
