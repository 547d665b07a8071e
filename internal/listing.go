package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

// Shape describes how a listing endpoint wraps its page envelope.
type Shape int

const (
	// SingleListing is a bare {"kind": "Listing", "data": {...}} object. An
	// array body is accepted and its first element used.
	SingleListing Shape = iota
	// CommentsListing is the [post listing, comment listing] pair returned by
	// /comments/{id}. The first element is skipped without being decoded.
	CommentsListing
)

// Page is one decoded page: the next cursor and the raw records, in server order.
type Page struct {
	// After is the cursor for the following page; "" when the server sent none.
	After    string
	Before   string
	Children []*types.Thing
}

// Lister fetches pages of one listing endpoint through the authenticated client.
type Lister struct {
	client *Client
	url    string
	shape  Shape
}

// NewLister returns a Lister for the absolute listing URL.
func NewLister(client *Client, listingURL string, shape Shape) *Lister {
	return &Lister{client: client, url: listingURL, shape: shape}
}

// URL returns the listing URL.
func (l *Lister) URL() string {
	return l.url
}

// Fetch performs exactly one authenticated GET for the page described by p.
func (l *Lister) Fetch(ctx context.Context, p types.Pagination) (*Page, error) {
	query := url.Values{}
	query.Set("raw_json", "1")
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.After != "" {
		query.Set("after", p.After)
	}

	body, err := l.client.Get(ctx, l.url, query)
	if err != nil {
		return nil, err
	}

	return DecodePage(body, l.shape)
}

// DecodePage parses a listing response body of the given shape.
func DecodePage(body []byte, shape Shape) (*Page, error) {
	envelope := body
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return nil, &pkgerrs.ParseError{Operation: "listing", Message: "response is not an array of listings", Err: err}
		}
		switch {
		case shape == CommentsListing && len(parts) >= 2:
			envelope = parts[1]
		case shape == CommentsListing:
			return nil, &pkgerrs.ParseError{Operation: "comments listing", Message: "expected a post listing followed by a comment listing"}
		case len(parts) >= 1:
			// /random redirects to a comments page; its first element holds the post.
			envelope = parts[0]
		default:
			return nil, &pkgerrs.ParseError{Operation: "listing", Message: "response is an empty array"}
		}
	}

	var listing struct {
		Kind string             `json:"kind"`
		Data *types.ListingData `json:"data"`
	}
	if err := json.Unmarshal(envelope, &listing); err != nil {
		return nil, &pkgerrs.ParseError{Operation: "listing", Message: "response is not a page envelope", Err: err}
	}
	if listing.Kind != "" && listing.Kind != "Listing" {
		return nil, &pkgerrs.ParseError{Operation: "listing", Message: "expected Listing, got " + listing.Kind}
	}
	if listing.Data == nil {
		return nil, &pkgerrs.ParseError{Operation: "listing", Message: "page envelope has no data"}
	}

	children := make([]*types.Thing, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child != nil {
			children = append(children, child)
		}
	}

	return &Page{
		After:    listing.Data.After,
		Before:   listing.Data.Before,
		Children: children,
	}, nil
}
