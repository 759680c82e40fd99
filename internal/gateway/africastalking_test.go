package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payloop/propman-backend/internal/gateway"
)

func TestAfricasTalkingSendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/version1/messaging", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("apiKey"))
		assert.Equal(t, "sandbox", r.FormValue("username"))
		assert.Equal(t, "+254712345678,+254722000001", r.FormValue("to"))
		assert.Equal(t, "hello", r.FormValue("message"))
		assert.Equal(t, "PropMan", r.FormValue("from"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"SMSMessageData":{"Message":"Sent to 2/2","Recipients":[
            {"number":"+254712345678","status":"Success","cost":"KES 0.8000","messageId":"ATXid_1"},
            {"number":"+254722000001","status":"InsufficientBalance","cost":"0","messageId":""}
        ]}}`))
	}))
	defer srv.Close()

	c := gateway.NewAfricasTalkingClient("sandbox", "secret", srv.URL)
	recipients, err := c.Send(context.Background(), "hello", []string{"+254712345678", "+254722000001"}, "PropMan")
	require.NoError(t, err)
	require.Len(t, recipients, 2)

	assert.Equal(t, "Success", recipients[0].Status)
	assert.Equal(t, "ATXid_1", recipients[0].MessageID)
	assert.Equal(t, "KES 0.8000", recipients[0].Cost)
	assert.Equal(t, "InsufficientBalance", recipients[1].Status)
}

func TestAfricasTalkingSendHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`The supplied authentication is invalid`))
	}))
	defer srv.Close()

	c := gateway.NewAfricasTalkingClient("sandbox", "wrong", srv.URL)
	_, err := c.Send(context.Background(), "hello", []string{"+254712345678"}, "PropMan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "africastalking: error 401")
}

func TestAfricasTalkingSendNetworkError(t *testing.T) {
	c := gateway.NewAfricasTalkingClient("sandbox", "secret", "http://127.0.0.1:1")
	_, err := c.Send(context.Background(), "hello", []string{"+254712345678"}, "PropMan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "africastalking: send request:")
}

func TestSandboxClientAcceptsEverything(t *testing.T) {
	c := &gateway.SandboxClient{}
	recipients, err := c.Send(context.Background(), "hi", []string{"+254712345678"}, "PropMan")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "Success", recipients[0].Status)
	assert.NotEmpty(t, recipients[0].MessageID)
	require.Len(t, c.Calls, 1)

	c.Reset()
	assert.Empty(t, c.Calls)
}

func TestClientsImplementInterface(t *testing.T) {
	var _ gateway.Client = (*gateway.AfricasTalkingClient)(nil)
	var _ gateway.Client = (*gateway.SandboxClient)(nil)
}
