// Package types holds the wire shapes and value objects shared by the client packages.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Token is an OAuth2 access token issued by Reddit's authorization endpoint.
// Tokens are immutable once issued and are replaced wholesale on refresh.
type Token struct {
	AccessToken string `json:"access_token"`
	// ExpiresIn is the declared lifetime in seconds. It is advisory: the client
	// detects stale tokens from 401/403 responses, not from a timer.
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	// IssuedAt is stamped locally when the token is stored.
	IssuedAt time.Time `json:"-"`
}

// Expiry returns the advisory expiry time, or the zero time when unknown.
func (t Token) Expiry() time.Time {
	if t.IssuedAt.IsZero() || t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return t.IssuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Expired reports whether the advisory lifetime has passed at now.
func (t Token) Expired(now time.Time) bool {
	expiry := t.Expiry()
	return !expiry.IsZero() && !now.Before(expiry)
}

// OAuth2 converts the token for use with golang.org/x/oauth2 transports.
func (t Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry(),
		ExpiresIn:    int64(t.ExpiresIn),
	}
}

// Credentials holds the material for Reddit's password grant.
// Username and Password are empty for non-user grants.
type Credentials struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
}

// Thing is the generic {kind, data} record Reddit wraps every object in.
// Data is kept raw and decoded by the caller according to Kind.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is a page envelope.
type Listing struct {
	Kind string      `json:"kind"`
	Data ListingData `json:"data"`
}

// ListingData contains the cursor pair and the raw children of one page.
// After and Before are null on the wire when absent; they decode to "".
type ListingData struct {
	After    string   `json:"after"`
	Before   string   `json:"before"`
	Children []*Thing `json:"children"`
}

// Created is an embeddable struct for things that have a creation time.
type Created struct {
	Created    float64 `json:"created"`
	CreatedUTC float64 `json:"created_utc"`
}

// Edited represents a field that can be a boolean or a timestamp.
// If IsEdited is true and Timestamp is 0, it was an old edit marked as `true`.
// If IsEdited is false, the item was not edited.
type Edited struct {
	IsEdited  bool
	Timestamp float64
}

// UnmarshalJSON implements json.Unmarshaler to handle mixed types for the "edited" field.
func (e *Edited) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(string(data))
	switch s {
	case "false", "null":
		*e = Edited{}
		return nil
	case "true":
		*e = Edited{IsEdited: true}
		return nil
	}

	var timestamp float64
	if err := json.Unmarshal(data, &timestamp); err == nil {
		*e = Edited{IsEdited: true, Timestamp: timestamp}
		return nil
	}

	return fmt.Errorf("unrecognized type for 'edited' field: %s", string(data))
}

// PostData is the data object of a "t3" record.
type PostData struct {
	Created
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	SelfText      string  `json:"selftext"`
	URL           string  `json:"url"`
	Permalink     string  `json:"permalink"`
	Domain        string  `json:"domain"`
	Subreddit     string  `json:"subreddit"`
	Ups           int     `json:"ups"`
	Downs         int     `json:"downs"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	IsSelf        bool    `json:"is_self"`
	Over18        bool    `json:"over_18"`
	Stickied      bool    `json:"stickied"`
	Locked        bool    `json:"locked"`
	Edited        Edited  `json:"edited"`
	Distinguished *string `json:"distinguished"`
}

// CommentData is the data object of a "t1" record. Replies are left raw
// because Reddit sends either "" or a nested Listing.
type CommentData struct {
	Created
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Author      string          `json:"author"`
	Body        string          `json:"body"`
	ParentID    string          `json:"parent_id"`
	LinkID      string          `json:"link_id"`
	Subreddit   string          `json:"subreddit"`
	Permalink   string          `json:"permalink"`
	Ups         int             `json:"ups"`
	Downs       int             `json:"downs"`
	Score       int             `json:"score"`
	Depth       int             `json:"depth"`
	ScoreHidden bool            `json:"score_hidden"`
	Stickied    bool            `json:"stickied"`
	Edited      Edited          `json:"edited"`
	Replies     json.RawMessage `json:"replies"`
}

// AccountData is the flat object returned by api/v1/me.
type AccountData struct {
	Created
	ID               string `json:"id"`
	Name             string `json:"name"`
	TotalKarma       int    `json:"total_karma"`
	LinkKarma        int    `json:"link_karma"`
	CommentKarma     int    `json:"comment_karma"`
	Verified         bool   `json:"verified"`
	HasVerifiedEmail *bool  `json:"has_verified_email"`
	IsGold           bool   `json:"is_gold"`
	IsMod            bool   `json:"is_mod"`
	Over18           bool   `json:"over_18"`
	InboxCount       int    `json:"inbox_count,omitempty"`
}

// Pagination captures the query parameters of one listing request.
// Reddit enforces a maximum Limit of 100.
type Pagination struct {
	Limit int
	// After is the fullname of the last item of the previous page.
	After string
}
