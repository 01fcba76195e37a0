/*
Package iamport implements the payment.Verifier interface against a
PortOne (iamport) compatible REST gateway.

Protocol:
  - POST {base}/users/getToken with the API key pair returns a short-lived
    access token.
  - GET {base}/payments/{paymentUID} with a Bearer token returns the
    payment record.

A payment verifies when its status is "paid" and its amount is within
payment.AmountTolerance of the server-computed total.
*/
package iamport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"storefront/domain/payment"
	"storefront/domain/shared"
)

const statusPaid = "paid"

// tokenExpirySlack refreshes the cached token slightly before the gateway
// would reject it, avoiding a failed lookup on the boundary.
const tokenExpirySlack = 30 * time.Second

// Client talks to the payment gateway over HTTP
type Client struct {
	baseURL    string
	impKey     string
	impSecret  string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a gateway client. timeout bounds every HTTP call.
func NewClient(baseURL, impKey, impSecret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		impKey:     impKey,
		impSecret:  impSecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// envelope is the gateway's uniform response wrapper
type envelope struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiredAt   int64  `json:"expired_at"`
	Now         int64  `json:"now"`
}

// Verify implements payment.Verifier.
// A returned error means the gateway could not be consulted; an invalid
// Result means the gateway answered and the payment does not hold up.
func (c *Client) Verify(ctx context.Context, paymentUID string, expected shared.Money) (*payment.Result, error) {
	record, err := c.LookupPayment(ctx, paymentUID)
	if err != nil {
		return nil, err
	}

	if record.Status != statusPaid {
		return payment.NotCompleted(record.Status), nil
	}

	diff := record.Amount - expected.Amount()
	if diff < 0 {
		diff = -diff
	}
	if diff > payment.AmountTolerance {
		return payment.AmountMismatch(record.Amount, expected.Amount()), nil
	}

	return payment.ValidResult(record), nil
}

// LookupPayment fetches the raw payment record by its gateway reference
func (c *Client) LookupPayment(ctx context.Context, paymentUID string) (*payment.GatewayPayment, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/payments/%s", c.baseURL, url.PathEscape(paymentUID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	env, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("payment lookup failed: %w", err)
	}

	var record payment.GatewayPayment
	if err := json.Unmarshal(env.Response, &record); err != nil {
		return nil, fmt.Errorf("failed to decode payment record: %w", err)
	}

	return &record, nil
}

// getToken returns a cached access token, refreshing it when expired
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	body, err := json.Marshal(map[string]string{
		"imp_key":    c.impKey,
		"imp_secret": c.impSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/users/getToken", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}

	var tok tokenResponse
	if err := json.Unmarshal(env.Response, &tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("gateway returned empty access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = tokenDeadline(tok)

	return c.accessToken, nil
}

// tokenDeadline derives the local refresh deadline from gateway timestamps.
// The gateway reports its own clock; using the delta avoids clock skew.
func tokenDeadline(tok tokenResponse) time.Time {
	if tok.ExpiredAt > 0 && tok.ExpiredAt > tok.Now {
		lifetime := time.Duration(tok.ExpiredAt-tok.Now) * time.Second
		if lifetime > tokenExpirySlack {
			return time.Now().Add(lifetime - tokenExpirySlack)
		}
		return time.Now().Add(lifetime / 2)
	}
	// Gateway did not report expiry; refresh every few minutes
	return time.Now().Add(5 * time.Minute)
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, truncate(string(data), 256))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode gateway envelope: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("gateway error %d: %s", env.Code, env.Message)
	}

	return &env, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Compile-time check that Client implements payment.Verifier
var _ payment.Verifier = (*Client)(nil)
