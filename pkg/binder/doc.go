// Package binder turns HTTP requests into typed request structs for handler.Wrap.
//
// JSON decodes the body strictly. Path and Query fill fields carrying `path`
// and `query` tags. Binders run in the order given, so one request struct can
// mix sources:
//
//	type updateStatusRequest struct {
//		ID     string `path:"id" json:"-"`
//		Status string `json:"status"`
//	}
package binder
