package token

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshBuffer is subtracted from the provider-declared expiry so a
// refresh always happens before the token is truly invalid.
const refreshBuffer = 5 * time.Minute

const defaultTokenURL = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"

// tokenResponse mirrors the JSON from the OAuth2 token endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	TokenType   string `json:"token_type"`
}

// Manager handles the OAuth2 client-credentials token lifecycle for the
// live provider's authenticated mode. Without credentials it stays
// permanently unauthenticated and hands out empty tokens, which callers
// translate into requests without an Authorization header.
type Manager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithTokenURL overrides the token endpoint (useful for testing).
func WithTokenURL(u string) Option {
	return func(m *Manager) { m.tokenURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Manager) { m.httpClient = hc }
}

// NewManager creates a token manager. Empty credentials are valid and
// put the manager in unauthenticated mode.
func NewManager(clientID, clientSecret string, opts ...Option) *Manager {
	m := &Manager{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Authenticated reports whether credentials are configured.
func (m *Manager) Authenticated() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// Token returns a valid access token, refreshing if needed. In
// unauthenticated mode it returns an empty token and no error. A failed
// exchange returns the error for the caller to log; the next call
// retries the exchange.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if !m.Authenticated() {
		return "", nil
	}

	m.mu.RLock()
	if m.token != "" && m.now().Before(m.expiresAt) {
		tok := m.token
		m.mu.RUnlock()
		return tok, nil
	}
	m.mu.RUnlock()

	return m.refresh(ctx)
}

// refresh fetches a new token from the OAuth2 endpoint.
func (m *Manager) refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if m.token != "" && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	data := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tokResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokResp); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	m.token = tokResp.AccessToken
	m.expiresAt = m.now().Add(time.Duration(tokResp.ExpiresIn)*time.Second - refreshBuffer)

	return m.token, nil
}
