// Package graw is a read-only Go client for the Reddit API.
//
// # Overview
//
// A Reddit handle owns one authenticated HTTP client. Every request goes
// through it: when the access token is missing or rejected with 401/403, the
// current authenticator logs in again and the request is retried exactly
// once. Listings are exposed as lazy feeds that fetch one page at a time.
//
// # Authentication
//
// Pick the authenticator matching your Reddit app type (see package auth):
//
//   - auth.ScriptAuthenticator: a personal "script" app acting as your account
//   - auth.ApplicationAuthenticator: anonymous, application-only access
//   - auth.UserAuthenticator: an account that authorized your app earlier,
//     identified by its refresh token
//
// New logs in once so that bad credentials fail immediately:
//
//	authenticator := auth.NewScriptAuthenticator(types.Credentials{
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//		Username:     "username",
//		Password:     "password",
//	})
//
//	reddit, err := graw.New(ctx, authenticator, &graw.Config{
//		UserAgent: "linux:myapp:v1.0 (by /u/yourusername)",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Feeds
//
// Feeds are lazy. Nothing is fetched until Next, All or Take is called, and
// a new page is requested only once the previous one is used up:
//
//	golang, err := reddit.Subreddit("golang")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for post, err := range golang.Hot().WithLimit(25).All(ctx) {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(post.Fullname(), post.Title)
//	}
//
// A feed keeps going as long as Reddit serves pages, so bound it with Take
// or by breaking out of the loop. Next returns Done when a page comes back
// empty. A failed fetch leaves the feed untouched; calling Next again retries
// the same page.
//
// Comments of a post are a feed too:
//
//	comments, err := post.Comments().Take(ctx, 50)
//
// # Error Handling
//
// Errors are typed (see package errors) and can be inspected with errors.As:
//
//	var authErr *errors.AuthError
//	if errors.As(err, &authErr) {
//		// credentials were rejected, even after a refresh
//	}
//
// Me returns errors.ErrNotLoggedIn without a network call when the
// authenticator does not act as an account.
//
// # Rate Limiting
//
// Requests are throttled client side (60 per minute by default, see
// Config.RateLimit) and Reddit's X-Ratelimit-* and Retry-After headers defer
// later requests when the quota runs out.
//
// # Thread Safety
//
// A Reddit handle is safe for concurrent use, including SetAuthenticator.
// A single feed is not; give each goroutine its own.
package graw
