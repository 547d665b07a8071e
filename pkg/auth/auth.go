// Package auth obtains and refreshes Reddit OAuth2 access tokens.
//
// Three grant types are supported, one per Reddit app type:
//
//   - ScriptAuthenticator: password grant for personal "script" apps (acts as that account)
//   - ApplicationAuthenticator: installed-client or client-credentials grant (anonymous)
//   - UserAuthenticator: refresh-token grant for a previously authorized account
//
// The set is closed; Authenticator cannot be implemented outside this package.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

const (
	// DefaultTokenURL is Reddit's authorization endpoint.
	DefaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	// DefaultDeviceID opts out of device tracking for the installed-client grant.
	DefaultDeviceID = "DO_NOT_TRACK_THIS_DEVICE"

	installedClientGrant = "https://oauth.reddit.com/grants/installed_client"
	maxTokenBodyBytes    = 1 << 20
	deviceIDLength       = 30
)

// Doer executes HTTP requests. *http.Client and the library transport satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Kind identifies the grant an authenticator uses.
type Kind int

const (
	KindScript Kind = iota
	KindApplication
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindApplication:
		return "application"
	case KindUser:
		return "user"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Authenticator produces and refreshes the token used to authorize API requests.
type Authenticator interface {
	// Login performs a token exchange and stores the result. On failure the
	// previously stored token, if any, is left untouched.
	Login(ctx context.Context, doer Doer) error
	// Token returns the last stored token without touching the network.
	Token() (types.Token, bool)
	// IsUser reports whether requests act on behalf of a Reddit account.
	IsUser() bool
	// RefreshToken returns the long-lived refresh token, if this grant has one.
	RefreshToken() (string, bool)
	Kind() Kind

	sealed()
}

// Option customizes an authenticator.
type Option func(*options)

type options struct {
	tokenURL     string
	deviceID     string
	clientSecret string
	logger       *slog.Logger
	now          func() time.Time
}

// WithTokenURL overrides the authorization endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(o *options) { o.tokenURL = tokenURL }
}

// WithDeviceID sets the device id sent by the installed-client grant.
func WithDeviceID(id string) Option {
	return func(o *options) { o.deviceID = id }
}

// WithClientSecret switches an ApplicationAuthenticator to the
// client_credentials grant, for confidential (web/script) apps.
func WithClientSecret(secret string) Option {
	return func(o *options) { o.clientSecret = secret }
}

// WithLogger routes grant diagnostics to logger. Secrets are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock overrides the clock used to stamp Token.IssuedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		tokenURL: DefaultTokenURL,
		deviceID: DefaultDeviceID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// NewDeviceID returns a random 30 character device id for the installed-client grant.
func NewDeviceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:deviceIDLength]
}

// tokenCell holds the current token. Readers see either the previous or the
// next token, never a partial one.
type tokenCell struct {
	mu    sync.RWMutex
	token *types.Token
}

func (c *tokenCell) load() (types.Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return types.Token{}, false
	}
	return *c.token, true
}

func (c *tokenCell) store(token types.Token) {
	c.mu.Lock()
	c.token = &token
	c.mu.Unlock()
}

// base carries what every grant shares.
type base struct {
	opts options
	cell tokenCell
}

func (b *base) Token() (types.Token, bool) {
	return b.cell.load()
}

func (b *base) hasToken() bool {
	_, ok := b.cell.load()
	return ok
}

func (*base) sealed() {}

// exchange posts form to the token endpoint and parses the answer.
func (b *base) exchange(ctx context.Context, doer Doer, form url.Values, username, password string) (types.Token, error) {
	if doer == nil {
		doer = http.DefaultClient
	}
	grantType := form.Get("grant_type")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.opts.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return types.Token{}, &pkgerrs.AuthError{Message: "failed to create token request", Err: err}
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	b.opts.logger.Debug("requesting access token", "grant_type", grantType, "url", b.opts.tokenURL)

	resp, err := doer.Do(req)
	if err != nil {
		return types.Token{}, &pkgerrs.TransportError{Op: "POST", URL: b.opts.tokenURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenBodyBytes))
	if err != nil {
		return types.Token{}, &pkgerrs.TransportError{Op: "read token body", URL: b.opts.tokenURL, Err: err}
	}

	token, err := parseTokenResponse(resp.StatusCode, body)
	if err != nil {
		b.opts.logger.Debug("token request rejected", "grant_type", grantType, "status", resp.StatusCode)
		return types.Token{}, err
	}
	token.IssuedAt = b.opts.now()

	b.opts.logger.Debug("access token obtained", "grant_type", grantType, "scope", token.Scope, "expires_in", token.ExpiresIn)
	return token, nil
}

// parseTokenResponse decodes a token endpoint answer. Reddit may answer 200
// with an {"error": "..."} body, so the token shape is tried first, then the
// error shape, and only then the status code.
func parseTokenResponse(status int, body []byte) (types.Token, error) {
	var token types.Token
	if err := json.Unmarshal(body, &token); err == nil && token.AccessToken != "" {
		return token, nil
	}

	var okButError struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &okButError); err == nil && okButError.Error != "" {
		return types.Token{}, &pkgerrs.AuthError{
			StatusCode: status,
			Message:    "username or password are most likely wrong, reddit returned: " + okButError.Error,
		}
	}

	if status == http.StatusUnauthorized {
		return types.Token{}, &pkgerrs.AuthError{
			StatusCode: status,
			Message:    "reddit returned 401 Unauthorized, are the client id and secret correct?",
		}
	}

	return types.Token{}, &pkgerrs.AuthError{
		StatusCode: status,
		Message:    "unexpected token response",
		Body:       string(body),
	}
}

// ScriptAuthenticator uses the password grant of a "script" app. Requests act
// as the account whose username and password are supplied.
type ScriptAuthenticator struct {
	base
	creds types.Credentials
}

// NewScriptAuthenticator returns an authenticator for a script app. No
// network call is made until Login.
func NewScriptAuthenticator(creds types.Credentials, opts ...Option) *ScriptAuthenticator {
	return &ScriptAuthenticator{
		base:  base{opts: buildOptions(opts)},
		creds: creds,
	}
}

func (a *ScriptAuthenticator) Login(ctx context.Context, doer Doer) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", a.creds.Username)
	form.Set("password", a.creds.Password)

	token, err := a.exchange(ctx, doer, form, a.creds.ClientID, a.creds.ClientSecret)
	if err != nil {
		return err
	}
	a.cell.store(token)
	return nil
}

func (a *ScriptAuthenticator) IsUser() bool { return a.hasToken() }

func (a *ScriptAuthenticator) RefreshToken() (string, bool) { return "", false }

func (a *ScriptAuthenticator) Kind() Kind { return KindScript }

// ApplicationAuthenticator authenticates as the app itself. It can browse
// public listings but cannot act as any account.
type ApplicationAuthenticator struct {
	base
	clientID string
}

// NewApplicationAuthenticator returns an anonymous authenticator. Without
// WithClientSecret it uses the installed-client grant and a device id.
func NewApplicationAuthenticator(clientID string, opts ...Option) *ApplicationAuthenticator {
	return &ApplicationAuthenticator{
		base:     base{opts: buildOptions(opts)},
		clientID: clientID,
	}
}

func (a *ApplicationAuthenticator) Login(ctx context.Context, doer Doer) error {
	form := url.Values{}
	if a.opts.clientSecret != "" {
		form.Set("grant_type", "client_credentials")
	} else {
		form.Set("grant_type", installedClientGrant)
		form.Set("device_id", a.opts.deviceID)
	}

	token, err := a.exchange(ctx, doer, form, a.clientID, a.opts.clientSecret)
	if err != nil {
		return err
	}
	a.cell.store(token)
	return nil
}

func (a *ApplicationAuthenticator) IsUser() bool { return false }

func (a *ApplicationAuthenticator) RefreshToken() (string, bool) { return "", false }

func (a *ApplicationAuthenticator) Kind() Kind { return KindApplication }

// UserAuthenticator refreshes access for an account that already completed
// Reddit's authorization code flow elsewhere.
type UserAuthenticator struct {
	base
	clientID string

	mu           sync.RWMutex
	refreshToken string
}

// NewUserAuthenticator returns an authenticator that trades refreshToken for access tokens.
func NewUserAuthenticator(refreshToken, clientID string, opts ...Option) *UserAuthenticator {
	return &UserAuthenticator{
		base:         base{opts: buildOptions(opts)},
		clientID:     clientID,
		refreshToken: refreshToken,
	}
}

// NewUserAuthenticatorWithToken is NewUserAuthenticator seeded with a token
// that is still believed valid, saving one exchange.
func NewUserAuthenticatorWithToken(refreshToken, clientID string, token types.Token, opts ...Option) *UserAuthenticator {
	a := NewUserAuthenticator(refreshToken, clientID, opts...)
	a.cell.store(token)
	return a
}

func (a *UserAuthenticator) Login(ctx context.Context, doer Doer) error {
	refresh, _ := a.RefreshToken()

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refresh)

	token, err := a.exchange(ctx, doer, form, a.clientID, "")
	if err != nil {
		return err
	}

	// Reddit may rotate the refresh token; keep the old one when it does not.
	a.mu.Lock()
	if token.RefreshToken != "" {
		a.refreshToken = token.RefreshToken
	} else {
		token.RefreshToken = a.refreshToken
	}
	a.mu.Unlock()

	a.cell.store(token)
	return nil
}

func (a *UserAuthenticator) IsUser() bool { return a.hasToken() }

func (a *UserAuthenticator) RefreshToken() (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.refreshToken, a.refreshToken != ""
}

func (a *UserAuthenticator) Kind() Kind { return KindUser }
