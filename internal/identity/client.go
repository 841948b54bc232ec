package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
)

// Roles recognized by the route guards.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// ErrUnauthorized is returned when the auth service rejects the token.
var ErrUnauthorized = errors.New("session token rejected")

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Client resolves bearer tokens against the external auth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates an identity client from the service configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Auth.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Auth.Timeout,
		},
		logger: logging.GetGlobalLogger(),
	}
}

// Resolve exchanges a bearer token for the caller's identity. Returns
// ErrUnauthorized for 401/403 responses.
func (c *Client) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if id.UserID == "" {
		return nil, ErrUnauthorized
	}
	return &id, nil
}
