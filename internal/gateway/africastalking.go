package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const africasTalkingDefaultBaseURL = "https://api.africastalking.com"

// AfricasTalkingClient sends SMS through the Africa's Talking REST API.
type AfricasTalkingClient struct {
	username string
	apiKey   string
	baseURL  string
	client   http.Client
}

// NewAfricasTalkingClient creates a client. If baseURL is empty, the
// production API is used (tests pass an httptest server URL instead).
func NewAfricasTalkingClient(username, apiKey, baseURL string) *AfricasTalkingClient {
	if baseURL == "" {
		baseURL = africasTalkingDefaultBaseURL
	}
	return &AfricasTalkingClient{
		username: username,
		apiKey:   apiKey,
		baseURL:  baseURL,
		client:   http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts one bulk SMS request and returns the per-recipient outcomes.
func (c *AfricasTalkingClient) Send(ctx context.Context, message string, phones []string, sender string) ([]Recipient, error) {
	endpoint := c.baseURL + "/version1/messaging"

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", strings.Join(phones, ","))
	form.Set("message", message)
	if sender != "" {
		form.Set("from", sender)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("africastalking: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("africastalking: send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("africastalking: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("africastalking: error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed struct {
		SMSMessageData struct {
			Message    string `json:"Message"`
			Recipients []struct {
				Number    string `json:"number"`
				Status    string `json:"status"`
				Cost      string `json:"cost"`
				MessageID string `json:"messageId"`
			} `json:"Recipients"`
		} `json:"SMSMessageData"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("africastalking: parse response: %w", err)
	}

	recipients := make([]Recipient, 0, len(parsed.SMSMessageData.Recipients))
	for _, r := range parsed.SMSMessageData.Recipients {
		recipients = append(recipients, Recipient{
			Number:    r.Number,
			Status:    r.Status,
			Cost:      r.Cost,
			MessageID: r.MessageID,
		})
	}
	return recipients, nil
}
