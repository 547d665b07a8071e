package internal

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
)

const (
	maxResponseBytes  = 32 << 20
	maxErrorBodyBytes = 512
)

// Client performs authenticated GETs against the Reddit API. It owns the
// transport and the current authenticator; every feed shares one Client.
type Client struct {
	transport *Transport
	logger    *slog.Logger

	mu   sync.RWMutex
	auth auth.Authenticator
}

// NewClient returns a Client. It does not log in.
func NewClient(transport *Transport, authenticator auth.Authenticator, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		transport: transport,
		logger:    logger,
		auth:      authenticator,
	}
}

// Authenticator returns the authenticator currently in use.
func (c *Client) Authenticator() auth.Authenticator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// SetAuthenticator swaps the authenticator. Requests already in flight finish
// with the authenticator they started with.
func (c *Client) SetAuthenticator(a auth.Authenticator) {
	c.mu.Lock()
	c.auth = a
	c.mu.Unlock()
}

// Login runs a token exchange on the current authenticator.
func (c *Client) Login(ctx context.Context) error {
	return c.Authenticator().Login(ctx, c.transport)
}

// IsUser reports whether the current authenticator acts as an account.
func (c *Client) IsUser() bool {
	return c.Authenticator().IsUser()
}

// Get issues an authenticated GET and returns the body of a 200 response.
//
// With no token, or when the first attempt is answered 401/403, the
// authenticator logs in and the request is retried exactly once. A second
// rejection is an *errors.AuthError. Any status other than 200, 401 and 403
// is an *errors.UnexpectedStatusError and never triggers a refresh.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	a := c.Authenticator()

	if token, ok := a.Token(); ok {
		status, body, err := c.do(ctx, rawURL, query, token.AccessToken)
		if err != nil {
			return nil, err
		}
		switch status {
		case http.StatusOK:
			return body, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			c.logger.Debug("token rejected, refreshing", "url", rawURL, "status", status)
		default:
			return nil, unexpectedStatus(status, rawURL, body)
		}
	}

	if err := a.Login(ctx, c.transport); err != nil {
		return nil, err
	}

	token, ok := a.Token()
	if !ok {
		return nil, &pkgerrs.InvariantError{Message: "token absent after a successful login"}
	}

	status, body, err := c.do(ctx, rawURL, query, token.AccessToken)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &pkgerrs.AuthError{
			StatusCode: status,
			Message:    "failed to authenticate, even after requesting a new token; check credentials",
		}
	default:
		return nil, unexpectedStatus(status, rawURL, body)
	}
}

// do performs one GET and returns status and body.
func (c *Client) do(ctx context.Context, rawURL string, query url.Values, accessToken string) (int, []byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, nil, &pkgerrs.ConfigError{Field: "url", Message: err.Error()}
	}
	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			q[key] = values
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, nil, &pkgerrs.TransportError{Op: "GET", URL: u.String(), Err: err}
	}
	req.Header.Set("Authorization", "bearer "+accessToken)

	resp, err := c.transport.Do(req)
	if err != nil {
		return 0, nil, &pkgerrs.TransportError{Op: "GET", URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &pkgerrs.TransportError{Op: "read body", URL: u.String(), Err: err}
	}

	c.logger.Debug("reddit request", "url", u.String(), "status", resp.StatusCode, "bytes", len(body))
	return resp.StatusCode, body, nil
}

func unexpectedStatus(status int, rawURL string, body []byte) error {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return &pkgerrs.UnexpectedStatusError{StatusCode: status, URL: rawURL, Body: string(body)}
}
