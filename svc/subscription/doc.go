// Package subscription owns the subscription record of a user: storage,
// activity evaluation, status and plan changes, and the confirmation
// notification sent when a subscription is created.
//
// A user has at most one subscription. MongoStore relies on the unique
// userId index from EnsureIndexes; Service also checks for an existing
// record before inserting.
//
// Activity is computed, not stored. Evaluate treats a subscription as active
// while its trial has not ended (and isTrialActive is set) or while it is
// active and inside the current billing period:
//
//	w := subscription.Evaluate(sub, time.Now())
//	if w.Active { ... }
//
// Status changes go through a TransitionPolicy. PermissivePolicy, the
// default, accepts any change; NewStrictPolicy restricts changes to the
// billing lifecycle.
package subscription
