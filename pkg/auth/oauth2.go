package auth

import (
	"context"
	"time"

	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenSource exposes an Authenticator as an oauth2.TokenSource, for code that
// already speaks golang.org/x/oauth2 (for example oauth2.Transport).
//
// Unlike the library's own request path, the returned source refreshes
// proactively once the token's advisory lifetime has passed.
func TokenSource(ctx context.Context, a Authenticator, doer Doer) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, auth: a, doer: doer, now: time.Now}
}

type tokenSource struct {
	ctx  context.Context
	auth Authenticator
	doer Doer
	now  func() time.Time
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	if token, ok := s.auth.Token(); ok && !token.Expired(s.now()) {
		return token.OAuth2(), nil
	}

	if err := s.auth.Login(s.ctx, s.doer); err != nil {
		return nil, err
	}

	token, ok := s.auth.Token()
	if !ok {
		return nil, &pkgerrs.InvariantError{Message: "token absent after a successful login"}
	}
	return token.OAuth2(), nil
}
