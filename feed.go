package graw

import (
	"context"
	"errors"
	"iter"

	"github.com/jamesprial/go-reddit-feeds/internal"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

// Done is returned by Feed.Next when a page comes back empty.
var Done = errors.New("no more items")

// DefaultLimit is the page size feeds request unless WithLimit says otherwise.
const DefaultLimit = internal.MaxPaginationLimit

// Feed is a lazy, cursor-paginated sequence over one Reddit listing. Items
// are fetched one page at a time, only when the buffered page runs out.
//
// A Feed is not safe for concurrent use.
type Feed[T any] struct {
	lister *internal.Lister
	kind   string
	mapFn  func(*types.Thing) (T, error)

	limit  int
	after  string
	buffer []T // reverse server order, so the next item is last
}

// PostFeed iterates over posts of a listing.
type PostFeed = Feed[*Post]

// CommentFeed iterates over the top-level comments of a post.
type CommentFeed = Feed[*Comment]

func newPostFeed(r *Reddit, listingURL string) *PostFeed {
	return &Feed[*Post]{
		lister: internal.NewLister(r.client, listingURL, internal.SingleListing),
		kind:   internal.KindLink,
		limit:  DefaultLimit,
		mapFn: func(thing *types.Thing) (*Post, error) {
			data, err := r.parser.ParseLink(thing)
			if err != nil {
				return nil, err
			}
			return newPost(r, thing.Kind, data), nil
		},
	}
}

func newCommentFeed(r *Reddit, listingURL string) *CommentFeed {
	return &Feed[*Comment]{
		lister: internal.NewLister(r.client, listingURL, internal.CommentsListing),
		kind:   internal.KindComment,
		limit:  DefaultLimit,
		mapFn: func(thing *types.Thing) (*Comment, error) {
			data, err := r.parser.ParseComment(thing)
			if err != nil {
				return nil, err
			}
			return newComment(thing.Kind, data, r.parser.CountReplies(data.Replies)), nil
		},
	}
}

// WithLimit sets how many items each page request asks for. Values are
// clamped to [1, 100]. It does not cap the number of items the feed yields;
// use Take for that.
func (f *Feed[T]) WithLimit(limit int) *Feed[T] {
	f.limit = internal.NewValidator().ClampLimit(limit)
	return f
}

// Limit returns the page size.
func (f *Feed[T]) Limit() int {
	return f.limit
}

// Cursor returns the "after" cursor the next page request will send.
// It is empty before the first page and when the server has sent none.
func (f *Feed[T]) Cursor() string {
	return f.after
}

// URL returns the listing URL the feed reads from.
func (f *Feed[T]) URL() string {
	return f.lister.URL()
}

// Next returns the next item, fetching a page when the buffer is empty.
// It returns Done when a fetched page holds no items. On any other error the
// cursor and buffer are left untouched, so calling Next again retries the
// same page.
func (f *Feed[T]) Next(ctx context.Context) (T, error) {
	if item, ok := f.pop(); ok {
		return item, nil
	}

	var zero T
	page, err := f.lister.Fetch(ctx, types.Pagination{Limit: f.limit, After: f.after})
	if err != nil {
		return zero, err
	}

	items := make([]T, 0, len(page.Children))
	for i := len(page.Children) - 1; i >= 0; i-- {
		child := page.Children[i]
		// Comment listings end with "more" stubs; skip anything not of our kind.
		if child.Kind != f.kind {
			continue
		}
		item, err := f.mapFn(child)
		if err != nil {
			return zero, &pkgerrs.ParseError{Operation: "listing", Message: "record does not match " + f.kind, Err: err}
		}
		items = append(items, item)
	}

	if page.After != "" {
		f.after = page.After
	}
	f.buffer = items

	item, ok := f.pop()
	if !ok {
		return zero, Done
	}
	return item, nil
}

// All ranges over the feed until Done. A fetch error is yielded once with
// the zero item and ends the sequence.
//
//	for post, err := range feed.All(ctx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(post.Title)
//	}
func (f *Feed[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := f.Next(ctx)
			if errors.Is(err, Done) {
				return
			}
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Take collects up to n items. It stops early at Done, and on any other
// error returns the items gathered so far together with the error.
func (f *Feed[T]) Take(ctx context.Context, n int) ([]T, error) {
	items := make([]T, 0, min(max(n, 0), DefaultLimit))
	for len(items) < n {
		item, err := f.Next(ctx)
		if errors.Is(err, Done) {
			break
		}
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *Feed[T]) pop() (T, bool) {
	var zero T
	if len(f.buffer) == 0 {
		return zero, false
	}
	last := len(f.buffer) - 1
	item := f.buffer[last]
	f.buffer[last] = zero
	f.buffer = f.buffer[:last]
	return item, true
}
