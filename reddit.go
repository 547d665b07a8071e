package graw

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jamesprial/go-reddit-feeds/internal"
	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
)

const (
	// DefaultBaseURL is the default Reddit API base URL
	DefaultBaseURL = "https://oauth.reddit.com/"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
	// Version of this library, suitable for embedding in a User-Agent.
	Version = "0.3.0"

	mePath = "api/v1/me"
)

// RateLimitConfig controls client side throttling. Zero fields take the
// defaults of 60 requests per minute with a burst of 10.
type RateLimitConfig = internal.RateLimitConfig

// Config holds the configuration for a Reddit handle.
// Only UserAgent is required; credentials live in the Authenticator.
//
// Example:
//
//	config := &graw.Config{
//		UserAgent: "linux:myapp:v1.0 (by /u/yourusername)",
//	}
type Config struct {
	// UserAgent string to identify your application to Reddit.
	// Should follow format: "platform:app-id:version (by /u/username)".
	// Must not contain newlines and is capped at 256 characters.
	UserAgent string

	// BaseURL for the Reddit API.
	// Defaults to DefaultBaseURL if not specified. Usually doesn't need to be changed.
	BaseURL string

	// HTTPClient to use for requests.
	// Defaults to a client with DefaultTimeout if not specified.
	// Customize this to set custom timeouts, proxies, or other HTTP behavior.
	HTTPClient *http.Client

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API calls.
	Logger *slog.Logger

	// RateLimit overrides the client side throttle. Optional.
	RateLimit *RateLimitConfig
}

// Reddit is an authenticated handle to the Reddit API.
// It is safe for concurrent use; feeds derived from it are not.
//
// Example usage:
//
//	authenticator := auth.NewScriptAuthenticator(types.Credentials{
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//		Username:     "username",
//		Password:     "password",
//	})
//
//	reddit, err := graw.New(ctx, authenticator, &graw.Config{UserAgent: "linux:myapp:v1.0 (by /u/me)"})
//	if err != nil {
//		return err
//	}
//
//	golang, err := reddit.Subreddit("golang")
//	if err != nil {
//		return err
//	}
//
//	posts, err := golang.Hot().WithLimit(25).Take(ctx, 25)
type Reddit struct {
	client    *internal.Client
	transport *internal.Transport
	baseURL   *url.URL
	parser    *internal.Parser
	validator *internal.Validator
	logger    *slog.Logger
}

// New validates config, builds the transport and logs in once with
// authenticator, so bad credentials fail here rather than on the first read.
//
// Returns an error if:
//   - config or authenticator is nil
//   - UserAgent is missing or invalid
//   - BaseURL is not an absolute URL
//   - the token exchange fails (*errors.AuthError or *errors.TransportError)
func New(ctx context.Context, authenticator auth.Authenticator, config *Config) (*Reddit, error) {
	r, err := newReddit(authenticator, config)
	if err != nil {
		return nil, err
	}

	if err := r.client.Login(ctx); err != nil {
		return nil, err
	}

	r.logger.Debug("reddit handle ready", "grant", authenticator.Kind().String(), "user", authenticator.IsUser())
	return r, nil
}

func newReddit(authenticator auth.Authenticator, config *Config) (*Reddit, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Field: "config", Message: "config cannot be nil"}
	}
	if authenticator == nil {
		return nil, &pkgerrs.ConfigError{Field: "authenticator", Message: "authenticator cannot be nil"}
	}

	// Work on a copy so the caller's struct is not mutated.
	cfg := *config

	validator := internal.NewValidator()
	if err := validator.ValidateUserAgent(cfg.UserAgent); err != nil {
		return nil, err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	transport := internal.NewTransport(cfg.HTTPClient, cfg.UserAgent, cfg.RateLimit, cfg.Logger)

	return &Reddit{
		client:    internal.NewClient(transport, authenticator, cfg.Logger),
		transport: transport,
		baseURL:   baseURL,
		parser:    internal.NewParser(),
		validator: validator,
		logger:    cfg.Logger,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: "base URL must be absolute"}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// SetAuthenticator swaps the authenticator without rebuilding the handle.
// The new authenticator logs in lazily on the next request. a must not be nil.
func (r *Reddit) SetAuthenticator(a auth.Authenticator) {
	r.client.SetAuthenticator(a)
	r.logger.Debug("authenticator replaced", "grant", a.Kind().String())
}

// Authenticator returns the authenticator currently in use.
func (r *Reddit) Authenticator() auth.Authenticator {
	return r.client.Authenticator()
}

// IsUser reports whether requests act as a Reddit account.
func (r *Reddit) IsUser() bool {
	return r.client.IsUser()
}

// RefreshToken returns the refresh token of the current authenticator, for
// storing across restarts. ok is false when the grant has none.
func (r *Reddit) RefreshToken() (string, bool) {
	return r.client.Authenticator().RefreshToken()
}

// Me returns information about the authenticated account.
//
// Returns errors.ErrNotLoggedIn without touching the network when the
// authenticator does not act as a user.
func (r *Reddit) Me(ctx context.Context) (*Me, error) {
	if !r.client.IsUser() {
		return nil, pkgerrs.ErrNotLoggedIn
	}

	body, err := r.client.Get(ctx, r.resolve(mePath), nil)
	if err != nil {
		return nil, err
	}

	account, err := r.parser.ParseAccount(body)
	if err != nil {
		return nil, &pkgerrs.ParseError{Operation: "me", Message: "unexpected account payload", Err: err}
	}
	return newMe(account), nil
}

// Subreddit returns a handle into a subreddit, or a "+"-joined multireddit.
// No network call is made.
func (r *Reddit) Subreddit(name string) (*Subreddit, error) {
	if err := r.validator.ValidateSubredditName(name); err != nil {
		return nil, err
	}
	return &Subreddit{
		Name:   name,
		URL:    strings.TrimSuffix(r.resolve("r/"+name), "/"),
		reddit: r,
	}, nil
}

// Frontpage returns a handle whose listings are the front page of the
// authenticated account, or of Reddit itself for anonymous grants.
func (r *Reddit) Frontpage() *Subreddit {
	return &Subreddit{
		Name:   "frontpage",
		URL:    strings.TrimSuffix(r.baseURL.String(), "/"),
		reddit: r,
	}
}

// resolve joins a relative path onto the base URL.
func (r *Reddit) resolve(path string) string {
	return r.baseURL.ResolveReference(&url.URL{Path: path}).String()
}
