package graw

// Subreddit is a handle into one subreddit, a multireddit or the front page.
// Creating feeds from it makes no network calls.
type Subreddit struct {
	// Name is the subreddit name as given, or "frontpage".
	Name string
	// URL is the absolute listing root, without a trailing slash.
	URL string

	reddit *Reddit
}

// Hot returns a feed over the subreddit's hot posts.
func (s *Subreddit) Hot() *PostFeed {
	return s.posts("hot")
}

// New returns a feed over the newest posts.
func (s *Subreddit) New() *PostFeed {
	return s.posts("new")
}

// Random returns a feed yielding a random post. Reddit redirects this
// listing to a single comment page, so each page holds one post.
func (s *Subreddit) Random() *PostFeed {
	return s.posts("random")
}

// Rising returns a feed over rising posts.
func (s *Subreddit) Rising() *PostFeed {
	return s.posts("rising")
}

// Top returns a feed over the top posts.
func (s *Subreddit) Top() *PostFeed {
	return s.posts("top")
}

// Controversial returns a feed over controversial posts.
func (s *Subreddit) Controversial() *PostFeed {
	return s.posts("controversial")
}

// Comments returns a feed over the top-level comments of post.
func (s *Subreddit) Comments(post *Post) *CommentFeed {
	return newCommentFeed(s.reddit, s.URL+"/comments/"+post.ID)
}

// CommentsByID is Comments for a bare base36 post id, for callers that
// stored the id rather than the Post.
func (s *Subreddit) CommentsByID(postID string) (*CommentFeed, error) {
	if err := s.reddit.validator.ValidatePostID(postID); err != nil {
		return nil, err
	}
	return newCommentFeed(s.reddit, s.URL+"/comments/"+postID), nil
}

func (s *Subreddit) posts(sort string) *PostFeed {
	return newPostFeed(s.reddit, s.URL+"/"+sort)
}
