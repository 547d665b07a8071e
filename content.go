package graw

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"

	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
)

const maxContentBytes = 16 << 20

// ContentKind classifies what a post's URL points at.
type ContentKind int

const (
	ContentText ContentKind = iota
	ContentHTML
	ContentImage
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentHTML:
		return "html"
	case ContentImage:
		return "image"
	default:
		return "unknown"
	}
}

// Content is the body found behind a post's URL.
type Content struct {
	Kind ContentKind
	// MediaType is the parsed Content-Type, such as "image/png".
	MediaType string
	Data      []byte
}

// Text returns the body as a string. Meaningful for text and html content.
func (c *Content) Text() string {
	return string(c.Data)
}

// Content downloads whatever the post links to and classifies it by its
// Content-Type. The request carries no Reddit credentials.
//
// Returns errors.ErrNoReadableContent when the server answers with anything
// other than text or an image.
func (p *Post) Content(ctx context.Context) (*Content, error) {
	if p.URL == "" {
		return nil, pkgerrs.ErrNoReadableContent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "url", Message: err.Error()}
	}

	resp, err := p.reddit.transport.Do(req)
	if err != nil {
		return nil, &pkgerrs.TransportError{Op: "GET", URL: p.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &pkgerrs.UnexpectedStatusError{StatusCode: resp.StatusCode, URL: p.URL}
	}

	kind, mediaType, ok := classifyContent(resp.Header.Get("Content-Type"))
	if !ok {
		return nil, pkgerrs.ErrNoReadableContent
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxContentBytes))
	if err != nil {
		return nil, &pkgerrs.TransportError{Op: "read body", URL: p.URL, Err: err}
	}

	return &Content{Kind: kind, MediaType: mediaType, Data: data}, nil
}

func classifyContent(contentType string) (ContentKind, string, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return 0, "", false
	}

	major, minor, _ := strings.Cut(mediaType, "/")
	switch {
	case major == "image":
		return ContentImage, mediaType, true
	case major == "text" && minor == "html":
		return ContentHTML, mediaType, true
	case major == "text":
		return ContentText, mediaType, true
	}
	return 0, "", false
}
