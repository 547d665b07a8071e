package internal

import (
	"encoding/json"
	"fmt"

	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

// Reddit kind tags.
const (
	KindComment   = "t1"
	KindAccount   = "t2"
	KindLink      = "t3"
	KindMessage   = "t4"
	KindSubreddit = "t5"
	KindMore      = "more"
	KindListing   = "Listing"
)

// Parser decodes raw records into their typed data objects.
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseLink extracts the post data from a Thing of kind "t3".
func (p *Parser) ParseLink(thing *types.Thing) (*types.PostData, error) {
	if thing == nil {
		return nil, fmt.Errorf("thing is nil")
	}
	if thing.Kind != KindLink {
		return nil, fmt.Errorf("expected t3 (Link), got %s", thing.Kind)
	}

	var post types.PostData
	if err := json.Unmarshal(thing.Data, &post); err != nil {
		return nil, fmt.Errorf("failed to parse Link data: %w", err)
	}
	if post.ID == "" {
		return nil, fmt.Errorf("link record has no id")
	}
	return &post, nil
}

// ParseComment extracts the comment data from a Thing of kind "t1".
func (p *Parser) ParseComment(thing *types.Thing) (*types.CommentData, error) {
	if thing == nil {
		return nil, fmt.Errorf("thing is nil")
	}
	if thing.Kind != KindComment {
		return nil, fmt.Errorf("expected t1 (Comment), got %s", thing.Kind)
	}

	var comment types.CommentData
	if err := json.Unmarshal(thing.Data, &comment); err != nil {
		return nil, fmt.Errorf("failed to parse Comment data: %w", err)
	}
	if comment.ID == "" {
		return nil, fmt.Errorf("comment record has no id")
	}
	return &comment, nil
}

// ParseAccount decodes the flat account object served by api/v1/me.
func (p *Parser) ParseAccount(body []byte) (*types.AccountData, error) {
	var account types.AccountData
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to parse account data: %w", err)
	}
	if account.Name == "" {
		return nil, fmt.Errorf("account object has no name")
	}
	return &account, nil
}

// CountReplies returns how many direct replies a comment's raw replies field
// holds. Reddit sends "" when there are none.
func (p *Parser) CountReplies(raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == `""` || string(raw) == "null" {
		return 0
	}

	var replies struct {
		Data types.ListingData `json:"data"`
	}
	if err := json.Unmarshal(raw, &replies); err != nil {
		return 0
	}

	count := 0
	for _, child := range replies.Data.Children {
		if child != nil && child.Kind == KindComment {
			count++
		}
	}
	return count
}
