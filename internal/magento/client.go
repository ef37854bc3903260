// Package magento is a thin REST client for the commerce platform backend.
// Tool wrappers are its only consumers; it does request/response plumbing and
// nothing else.
package magento

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/sivajik34/aifastcommerce/internal/config"
)

// APIError is a non-2xx response from the commerce API. The server's error
// body is preserved so agents can relay the actual failure reason.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("magento: %s %s: status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Body)
}

// Client issues requests against the Magento-style REST surface. All endpoint
// paths are relative to /rest/<store-view>/V1/.
type Client struct {
	http      *resty.Client
	storeView string
}

func NewClient(cfg config.MagentoConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(cfg.AccessToken)

	if !cfg.VerifyTLS {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // operator opt-in for self-signed dev stores
	}

	return &Client{
		http:      rc,
		storeView: cfg.StoreView,
	}
}

// Send issues one request and returns the response body as JSON. Non-2xx
// responses return an *APIError carrying the server's error body. Non-JSON
// bodies are wrapped as a JSON string so callers always get valid JSON.
func (c *Client) Send(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	path := "/rest/" + c.storeView + "/V1/" + strings.TrimLeft(endpoint, "/")

	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("magento.Client.Send: %s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}

	raw := resp.Body()
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(raw) {
		quoted, qerr := json.Marshal(string(raw))
		if qerr != nil {
			return nil, fmt.Errorf("magento.Client.Send: quote body: %w", qerr)
		}
		return quoted, nil
	}

	return json.RawMessage(raw), nil
}

// Get is shorthand for Send with GET and no body.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.Send(ctx, "GET", endpoint, nil)
}
