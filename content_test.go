package graw_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	graw "github.com/jamesprial/go-reddit-feeds"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
	"github.com/jamesprial/go-reddit-feeds/test_helpers"
)

func TestPost_Content(t *testing.T) {
	t.Parallel()

	var sawAuthorization atomic.Bool
	content := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuthorization.Store(true)
		}
		switch r.URL.Path {
		case "/image":
			w.Header().Set("Content-Type", "image/png")
			io.WriteString(w, "\x89PNG")
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			io.WriteString(w, "<p>hello</p>")
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			io.WriteString(w, "hello")
		case "/binary":
			w.Header().Set("Content-Type", "application/octet-stream")
			io.WriteString(w, "\x00\x01")
		default:
			http.NotFound(w, r)
		}
	}))
	defer content.Close()

	ms := test_helpers.NewMockServer()
	defer ms.Close()

	paths := []string{"/image", "/page", "/plain", "/binary", "/missing"}
	var things []*types.Thing
	for i, path := range paths {
		things = append(things, test_helpers.Thing("t3", map[string]any{
			"id":        string(rune('a' + i)),
			"subreddit": "golang",
			"url":       content.URL + path,
		}))
	}
	ms.SetResponse(hotPath, test_helpers.Listing("", things...))

	reddit := newTestReddit(t, ms, test_helpers.ScriptAuthenticator(ms))
	golang, _ := reddit.Subreddit("golang")
	posts, err := golang.Hot().Take(context.Background(), len(paths))
	if err != nil || len(posts) != len(paths) {
		t.Fatalf("Take = %d posts, %v", len(posts), err)
	}

	tests := []struct {
		post     *graw.Post
		wantKind graw.ContentKind
		wantText string
		wantErr  error
	}{
		{post: posts[0], wantKind: graw.ContentImage, wantText: "\x89PNG"},
		{post: posts[1], wantKind: graw.ContentHTML, wantText: "<p>hello</p>"},
		{post: posts[2], wantKind: graw.ContentText, wantText: "hello"},
		{post: posts[3], wantErr: pkgerrs.ErrNoReadableContent},
	}

	for _, tt := range tests {
		t.Run(tt.post.URL, func(t *testing.T) {
			got, err := tt.post.Content(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Content returned error: %v", err)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text() != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text(), tt.wantText)
			}
		})
	}

	_, err = posts[4].Content(context.Background())
	var statusErr *pkgerrs.UnexpectedStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected a 404 UnexpectedStatusError, got %v", err)
	}

	if sawAuthorization.Load() {
		t.Error("content requests must not carry Reddit credentials")
	}
}

func TestContentKind_String(t *testing.T) {
	tests := map[graw.ContentKind]string{
		graw.ContentText:     "text",
		graw.ContentHTML:     "html",
		graw.ContentImage:    "image",
		graw.ContentKind(42): "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(kind), got, want)
		}
	}
}
