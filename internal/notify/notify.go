// Package notify provides the notification delivery boundary used by
// the notification consumer, with an SMTP implementation and a no-op
// implementation for deployments with notifications disabled.
package notify

import "context"

// Message is the content to be delivered by a Transport.
type Message struct {
	Subject string
	Body    string
}

// Transport is the interface for notification delivery backends.
type Transport interface {
	// Name returns the transport identifier (e.g. "smtp").
	Name() string

	// Send delivers the message to the given address.
	Send(ctx context.Context, to string, msg Message) error
}
