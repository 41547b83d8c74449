// Package notification is the HTTP client for the notification service.
//
// Requests carry the X-API-Key header and the caller's request ID. A circuit
// breaker stops calling the service after consecutive transport failures or
// 5xx answers and probes it again after BreakerOpenTimeout.
//
//	client := notification.New(cfg, notification.WithLogger(log), notification.WithObserver(recorder))
//	ok, err := client.SendSubscriptionConfirmation(ctx, payload)
package notification
