/**
 * @description
 * This package provides a client for resolving session cookies against the
 * external authentication service. The admin backend never validates
 * credentials itself; it forwards the session token and receives the
 * authenticated user, or nothing when the session is missing or expired.
 */
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Session is the authenticated user resolved from a session token.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// Client provides methods to interact with the auth service.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
}

// NewClient creates a new auth service client. cookieName is the session
// cookie the auth service issues.
func NewClient(baseURL, cookieName string) *Client {
	return &Client{
		baseURL:    baseURL,
		cookieName: cookieName,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// sessionResponse mirrors the auth service's session endpoint payload.
type sessionResponse struct {
	User *struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// GetSession resolves a session token. It returns (nil, nil) when the token
// does not map to a live session; errors are reserved for transport and
// decoding failures.
func (c *Client) GetSession(ctx context.Context, sessionToken string) (*Session, error) {
	if sessionToken == "" {
		return nil, nil
	}

	url := fmt.Sprintf("%s/api/auth/session", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: c.cookieName, Value: sessionToken})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call auth service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	// The auth service responds with a JSON null body for anonymous callers.
	var parsed sessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	if parsed.User == nil || parsed.User.ID == "" {
		return nil, nil
	}

	return &Session{
		UserID: parsed.User.ID,
		Email:  parsed.User.Email,
		Name:   parsed.User.Name,
	}, nil
}
