// Package notify delivers push notifications to registered devices.
// Delivery is best effort: the upload pipeline logs failures and never
// propagates them to the client.
package notify

import "context"

// Dispatcher sends one titled message with a data payload to a device
// token. Implementations make a single delivery attempt.
type Dispatcher interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}
