// Package billing exposes subscriptions and payments as JSON over HTTP.
//
// SubscriptionHandler and PaymentHandler each implement Mountable and are
// mounted by Router under /subscriptions and /payments. Every body uses the
// handler.JSONResponse envelope. Domain errors are mapped as follows:
//
//	not found             404 not_found
//	duplicate record      409 conflict
//	illegal status change 409 invalid_status_transition
//	failed validation     400 validation_error
//	malformed JSON        400 bad_request
//	anything else         500 internal_error
//
// Lookups that find nothing answer 404 even though the services return nil.
package billing
