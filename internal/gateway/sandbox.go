package gateway

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

// SandboxClient accepts every message without touching the network.
// Used for local development (no API key configured) and in tests that
// want to inspect what would have gone out.
type SandboxClient struct {
	mu    sync.Mutex
	Calls []SandboxCall
}

// SandboxCall records a single Send invocation.
type SandboxCall struct {
	Message string
	Phones  []string
	Sender  string
}

func (c *SandboxClient) Send(_ context.Context, message string, phones []string, sender string) ([]Recipient, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, SandboxCall{Message: message, Phones: phones, Sender: sender})
	c.mu.Unlock()

	log.Printf("📨 sandbox SMS to %v: %s\n", phones, message)

	recipients := make([]Recipient, 0, len(phones))
	for _, phone := range phones {
		recipients = append(recipients, Recipient{
			Number:    phone,
			Status:    "Success",
			Cost:      "KES 1.0000",
			MessageID: "ATXid_" + uuid.NewString(),
		})
	}
	return recipients, nil
}

// Reset clears all recorded calls.
func (c *SandboxClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = nil
}
