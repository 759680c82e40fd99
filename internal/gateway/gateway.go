package gateway

import "context"

// Recipient is the per-phone outcome reported by the SMS gateway.
// Status "Success" (case-insensitive) means the message was accepted;
// anything else is the gateway's rejection reason.
type Recipient struct {
	Number    string
	Status    string
	Cost      string // e.g. "KES 0.8000", empty when not reported
	MessageID string
}

// Client abstracts the outbound SMS gateway. Implementations make exactly
// one send attempt per call; retries, if wanted, belong to the caller.
type Client interface {
	Send(ctx context.Context, message string, phones []string, sender string) ([]Recipient, error)
}
