package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.github.com"

	jwtLifetime = 10 * time.Minute
	// GitHub rejects an iat in the future; backdating covers clock skew.
	jwtBackdate = 60 * time.Second
)

// Client talks to the GitHub App token endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

var _ IGitHub = (*Client)(nil)

// NewClient creates a Client. An empty baseURL means api.github.com.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// MintInstallationToken signs an App JWT and exchanges it for an installation token.
func (c *Client) MintInstallationToken(ctx context.Context, app AppCredentials, installationID int64) (InstallationToken, error) {
	key, err := parsePrivateKey(app.PrivateKeyPEM)
	if err != nil {
		return InstallationToken{}, err
	}

	jwt, err := signAppJWT(key, app.AppID, c.now())
	if err != nil {
		return InstallationToken{}, fmt.Errorf("github: generating JWT: %w", err)
	}

	url := c.baseURL + "/app/installations/" + strconv.FormatInt(installationID, 10) + "/access_tokens"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return InstallationToken{}, fmt.Errorf("github: creating token request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+jwt)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return InstallationToken{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return InstallationToken{}, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return InstallationToken{}, fmt.Errorf("%w: HTTP %d: %s", ErrRejected, resp.StatusCode, string(raw))
	}

	var result struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return InstallationToken{}, fmt.Errorf("github: decoding token response: %w", err)
	}
	if result.Token == "" {
		return InstallationToken{}, fmt.Errorf("%w: empty token", ErrRejected)
	}

	return InstallationToken{Token: result.Token, ExpiresAt: result.ExpiresAt}, nil
}
