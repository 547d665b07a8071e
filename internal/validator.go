package internal

import (
	"fmt"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
)

const (
	// Subreddit name constraints
	minSubredditLength = 2
	maxSubredditLength = 21

	// Pagination constraints
	MinPaginationLimit = 1
	MaxPaginationLimit = 100

	// Post ID constraints
	maxPostIDLength = 16

	// User agent constraints
	maxUserAgentLength = 256
)

// Validator provides validation operations for Reddit API parameters.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubredditName checks a subreddit name, or a "+"-joined multireddit
// such as "golang+rust", against Reddit's naming rules.
func (v *Validator) ValidateSubredditName(name string) error {
	if name == "" {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: "subreddit name cannot be empty"}
	}
	for _, part := range strings.Split(name, "+") {
		if err := validateSingleSubreddit(part); err != nil {
			return err
		}
	}
	return nil
}

func validateSingleSubreddit(name string) error {
	if len(name) < minSubredditLength {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name must be at least %d characters", minSubredditLength)}
	}
	if len(name) > maxSubredditLength {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name cannot exceed %d characters", maxSubredditLength)}
	}
	if name[0] == '_' {
		return &pkgerrs.ConfigError{Field: "subreddit", Message: "subreddit name cannot start with underscore"}
	}
	for i, ch := range name {
		if !(ch >= 'a' && ch <= 'z') && !(ch >= 'A' && ch <= 'Z') && !(ch >= '0' && ch <= '9') && ch != '_' {
			return &pkgerrs.ConfigError{Field: "subreddit", Message: fmt.Sprintf("subreddit name contains invalid character '%c' at position %d", ch, i)}
		}
	}
	return nil
}

// ClampLimit forces a page size into Reddit's accepted range.
func (v *Validator) ClampLimit(limit int) int {
	if limit > MaxPaginationLimit {
		return MaxPaginationLimit
	}
	if limit < MinPaginationLimit {
		return MinPaginationLimit
	}
	return limit
}

// ValidatePostID checks that id is a bare base36 post id (no "t3_" prefix).
func (v *Validator) ValidatePostID(id string) error {
	if id == "" {
		return &pkgerrs.ConfigError{Field: "postID", Message: "post ID cannot be empty"}
	}
	if len(id) > maxPostIDLength {
		return &pkgerrs.ConfigError{Field: "postID", Message: fmt.Sprintf("post ID too long (max %d characters)", maxPostIDLength)}
	}
	for _, char := range id {
		if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')) {
			return &pkgerrs.ConfigError{Field: "postID", Message: fmt.Sprintf("post ID contains invalid character: %c (only alphanumeric allowed)", char)}
		}
	}
	return nil
}

// ValidateUserAgent validates the User-Agent string to prevent header injection attacks.
func (v *Validator) ValidateUserAgent(ua string) error {
	if len(ua) == 0 {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot be empty"}
	}
	if strings.ContainsAny(ua, "\r\n") {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: "user agent cannot contain newline characters"}
	}
	if len(ua) > maxUserAgentLength {
		return &pkgerrs.ConfigError{Field: "UserAgent", Message: fmt.Sprintf("user agent too long (max %d characters)", maxUserAgentLength)}
	}
	return nil
}
