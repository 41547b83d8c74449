// Package async runs functions in goroutines and hands back typed futures.
//
// Detach and Go are for side effects that must not be cancelled with the
// request that started them, such as the subscription confirmation
// notification. Tracker lets the server drain those tasks on shutdown.
package async
