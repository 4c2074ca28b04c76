package cord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultGatewayURL is the gateway used when no GatewayRetriever is set.
const DefaultGatewayURL = "wss://gateway.discord.gg"

// GatewayRetriever returns the socket URL to connect to.
type GatewayRetriever interface {
	// Gateway returns the gateway URL to connect to.
	Gateway(ctx context.Context) (url string, err error)
}

// StaticGateway is a GatewayRetriever that always returns the same URL.
type StaticGateway string

// Gateway implements GatewayRetriever.Gateway
func (s StaticGateway) Gateway(context.Context) (string, error) { return string(s), nil }

// HTTPGatewayRetriever is an implementation of the GatewayRetriever that
// looks up the gateway from the REST API's /gateway/bot endpoint.
type HTTPGatewayRetriever struct {
	Client  *http.Client
	BaseURL string
	Token   string
}

// Gateway implements GatewayRetriever.Gateway
func (h HTTPGatewayRetriever) Gateway(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/gateway/bot", nil)
	if err != nil {
		return "", err
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bot "+h.Token)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cord/gateway: unexpected status %d: %s", res.StatusCode, b)
	}

	data := &gatewayResponse{}
	if err := json.Unmarshal(b, data); err != nil {
		return "", err
	}
	if data.URL == "" {
		return "", fmt.Errorf("cord/gateway: response has no url")
	}

	return data.URL, nil
}
