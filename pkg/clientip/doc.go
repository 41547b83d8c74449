// Package clientip resolves the address of the service calling the API.
//
// Internal callers reach the service either directly or through the cluster
// ingress, which appends the peer to X-Forwarded-For. FromRequest takes the
// first valid X-Forwarded-For entry, then X-Real-IP, then RemoteAddr.
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
