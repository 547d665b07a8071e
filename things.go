package graw

import (
	"time"

	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

// Post is a snapshot of a link or self post.
type Post struct {
	// Kind is the record's kind tag as sent by Reddit, normally "t3".
	Kind string
	// ID is the base36 id, without the kind prefix.
	ID string

	Title     string
	Author    string
	SelfText  string
	Subreddit string
	// URL is the linked website for link posts and the comment page for self posts.
	URL       string
	Permalink string
	Domain    string

	Ups         int
	Downs       int
	Score       int
	NumComments int

	IsSelf   bool
	Over18   bool
	Stickied bool
	Locked   bool
	Edited   bool

	Created time.Time

	reddit *Reddit
}

// Fullname is the canonical name Reddit uses to address the post, such as
// "t3_abc123". Kind and ID are joined as received.
func (p *Post) Fullname() string {
	return p.Kind + "_" + p.ID
}

// Comments returns a feed over the post's top-level comments. No network
// call is made until the feed is read.
func (p *Post) Comments() *CommentFeed {
	url := p.reddit.resolve("r/" + p.Subreddit + "/comments/" + p.ID)
	return newCommentFeed(p.reddit, url)
}

func newPost(r *Reddit, kind string, data *types.PostData) *Post {
	return &Post{
		Kind:        kind,
		ID:          data.ID,
		Title:       data.Title,
		Author:      data.Author,
		SelfText:    data.SelfText,
		Subreddit:   data.Subreddit,
		URL:         data.URL,
		Permalink:   data.Permalink,
		Domain:      data.Domain,
		Ups:         data.Ups,
		Downs:       data.Downs,
		Score:       data.Score,
		NumComments: data.NumComments,
		IsSelf:      data.IsSelf,
		Over18:      data.Over18,
		Stickied:    data.Stickied,
		Locked:      data.Locked,
		Edited:      data.Edited.IsEdited,
		Created:     unixTime(data.CreatedUTC),
		reddit:      r,
	}
}

// Comment is a snapshot of a single comment. Nested replies are not
// expanded; ReplyCount reports how many direct replies were sent inline.
type Comment struct {
	Kind string
	ID   string

	Author    string
	Body      string
	ParentID  string
	LinkID    string
	Subreddit string
	Permalink string

	Ups         int
	Downs       int
	Score       int
	Depth       int
	ScoreHidden bool
	Stickied    bool
	Edited      bool
	ReplyCount  int

	Created time.Time
}

// Fullname is the canonical name of the comment, such as "t1_abc123".
func (c *Comment) Fullname() string {
	return c.Kind + "_" + c.ID
}

func newComment(kind string, data *types.CommentData, replies int) *Comment {
	return &Comment{
		Kind:        kind,
		ID:          data.ID,
		Author:      data.Author,
		Body:        data.Body,
		ParentID:    data.ParentID,
		LinkID:      data.LinkID,
		Subreddit:   data.Subreddit,
		Permalink:   data.Permalink,
		Ups:         data.Ups,
		Downs:       data.Downs,
		Score:       data.Score,
		Depth:       data.Depth,
		ScoreHidden: data.ScoreHidden,
		Stickied:    data.Stickied,
		Edited:      data.Edited.IsEdited,
		ReplyCount:  replies,
		Created:     unixTime(data.CreatedUTC),
	}
}

// Me is information about the authenticated account.
type Me struct {
	ID           string
	Name         string
	TotalKarma   int
	LinkKarma    int
	CommentKarma int
	Verified     bool
	// HasVerifiedEmail is nil when Reddit did not say.
	HasVerifiedEmail *bool
	IsGold           bool
	IsMod            bool
	Over18           bool
	InboxCount       int
	Created          time.Time
}

func newMe(data *types.AccountData) *Me {
	return &Me{
		ID:               data.ID,
		Name:             data.Name,
		TotalKarma:       data.TotalKarma,
		LinkKarma:        data.LinkKarma,
		CommentKarma:     data.CommentKarma,
		Verified:         data.Verified,
		HasVerifiedEmail: data.HasVerifiedEmail,
		IsGold:           data.IsGold,
		IsMod:            data.IsMod,
		Over18:           data.Over18,
		InboxCount:       data.InboxCount,
		Created:          unixTime(data.CreatedUTC),
	}
}

func unixTime(seconds float64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(int64(seconds), 0).UTC()
}
