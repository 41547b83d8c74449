// Package metrics exposes the service's Prometheus collectors.
//
// Recorder satisfies the observer interfaces of pkg/cache and
// pkg/notification, and its Middleware labels HTTP traffic by chi route
// pattern:
//
//	rec, err := metrics.New(metrics.DefaultNamespace, nil)
//	r.Use(rec.Middleware)
//	r.Handle("/metrics", rec.Handler())
package metrics
