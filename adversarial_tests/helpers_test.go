package adversarial_tests

import (
	"context"
	"testing"

	graw "github.com/jamesprial/go-reddit-feeds"
	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
	"github.com/jamesprial/go-reddit-feeds/test_helpers"
)

func testConfig(ms *test_helpers.MockServer) *graw.Config {
	return &graw.Config{
		UserAgent:  "test:adversarial:v0 (by /u/tester)",
		BaseURL:    ms.BaseURL(),
		HTTPClient: ms.Client(),
		RateLimit:  &graw.RateLimitConfig{RequestsPerMinute: 600000, Burst: 1000},
	}
}

func createTestReddit(t *testing.T, ms *test_helpers.MockServer, a auth.Authenticator) *graw.Reddit {
	t.Helper()

	reddit, err := graw.New(context.Background(), a, testConfig(ms))
	if err != nil {
		t.Fatalf("failed to create reddit handle: %v", err)
	}
	return reddit
}

func subreddit(t *testing.T, reddit *graw.Reddit, name string) *graw.Subreddit {
	t.Helper()

	s, err := reddit.Subreddit(name)
	if err != nil {
		t.Fatalf("Subreddit(%q) returned error: %v", name, err)
	}
	return s
}
