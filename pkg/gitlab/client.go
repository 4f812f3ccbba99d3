package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const DefaultInstanceURL = "https://gitlab.com"

// Client performs OAuth token refreshes against GitLab instances.
type Client struct {
	httpClient *http.Client
}

var _ IGitLab = (*Client)(nil)

// NewClient creates a Client. A nil httpClient gets a 15s timeout client.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{httpClient: httpClient}
}

// RefreshToken exchanges a refresh token for a new access/refresh pair.
func (c *Client) RefreshToken(ctx context.Context, req RefreshRequest) (TokenPair, error) {
	if req.RefreshToken == "" {
		return TokenPair{}, fmt.Errorf("%w: empty refresh token", ErrGrantRevoked)
	}

	instance := req.InstanceURL
	if instance == "" {
		instance = DefaultInstanceURL
	}
	tokenURL, err := url.JoinPath(strings.TrimRight(instance, "/"), "/oauth/token")
	if err != nil {
		return TokenPair{}, fmt.Errorf("gitlab: building token URL: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	// An expired token with only the refresh half set forces the refresh grant.
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: req.RefreshToken, Expiry: time.Unix(1, 0)})

	tok, err := src.Token()
	if err != nil {
		return TokenPair{}, classify(err)
	}

	pair := TokenPair{AccessToken: tok.AccessToken}
	if tok.RefreshToken != req.RefreshToken {
		pair.RefreshToken = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		pair.ExpiresAt = &expiry
	}
	return pair, nil
}

func classify(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: HTTP %d", ErrUnavailable, retrieveErr.Response.StatusCode)
		}
		switch retrieveErr.ErrorCode {
		case "invalid_grant", "invalid_client", "unauthorized_client":
			return fmt.Errorf("%w: %s", ErrGrantRevoked, retrieveErr.ErrorCode)
		}
		if retrieveErr.Response != nil && (retrieveErr.Response.StatusCode == http.StatusBadRequest || retrieveErr.Response.StatusCode == http.StatusUnauthorized) {
			return fmt.Errorf("%w: HTTP %d", ErrGrantRevoked, retrieveErr.Response.StatusCode)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
