// Package email sends transactional e-mail through Postmark, or to disk
// during development.
//
// ConfirmationNotifier renders the subscription confirmation and sends it
// directly. It is used in place of the notification service client when
// NOTIFIER_BACKEND=postmark or NOTIFIER_BACKEND=dev.
//
//	sender, err := email.NewPostmarkClient(cfg)
//	notifier := email.NewConfirmationNotifier(sender)
package email
