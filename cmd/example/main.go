package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	graw "github.com/jamesprial/go-reddit-feeds"
	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML credentials file")
	subreddit := pflag.StringP("subreddit", "r", "golang", "subreddit to read, or \"frontpage\"")
	sort := pflag.StringP("sort", "s", "hot", "listing: hot, new, rising, top, controversial or random")
	limit := pflag.IntP("limit", "n", 5, "number of posts to print")
	comments := pflag.Int("comments", 3, "comments to print for the first post (0 disables)")
	debug := pflag.Bool("debug", false, "log requests at debug level")
	pflag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	// Route structured logs to stderr so stdout stays readable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "cli:graw-example:v" + graw.Version
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reddit, err := graw.New(ctx, cfg.authenticator(logger), &graw.Config{
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Reddit: %v", err)
	}

	me, err := reddit.Me(ctx)
	switch {
	case errors.Is(err, pkgerrs.ErrNotLoggedIn):
		fmt.Println("Browsing anonymously")
	case err != nil:
		log.Printf("Failed to get user info: %v", err)
	default:
		fmt.Printf("Authenticated as u/%s (%d karma)\n", me.Name, me.TotalKarma)
	}

	handle := reddit.Frontpage()
	if *subreddit != "frontpage" {
		if handle, err = reddit.Subreddit(*subreddit); err != nil {
			log.Fatal(err)
		}
	}

	feed, err := pickFeed(handle, *sort)
	if err != nil {
		log.Fatal(err)
	}

	posts, err := feed.WithLimit(*limit).Take(ctx, *limit)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", feed.URL(), err)
	}

	fmt.Printf("\n%s posts from %s:\n", *sort, handle.Name)
	for i, post := range posts {
		fmt.Printf("%d. [%s] %s (score: %d, comments: %d)\n",
			i+1, post.Fullname(), post.Title, post.Score, post.NumComments)
	}

	if *comments > 0 && len(posts) > 0 {
		fmt.Printf("\nComments on %q:\n", posts[0].Title)
		for comment, err := range posts[0].Comments().WithLimit(*comments).All(ctx) {
			if err != nil {
				log.Fatalf("Failed to read comments: %v", err)
			}
			fmt.Printf("- u/%s: %s\n", comment.Author, firstLine(comment.Body))
			*comments--
			if *comments == 0 {
				break
			}
		}
	}

	if refresh, ok := reddit.RefreshToken(); ok {
		logger.Debug("refresh token available for reuse", "length", len(refresh))
	}
}

func pickFeed(s *graw.Subreddit, sort string) (*graw.PostFeed, error) {
	switch sort {
	case "hot":
		return s.Hot(), nil
	case "new":
		return s.New(), nil
	case "rising":
		return s.Rising(), nil
	case "top":
		return s.Top(), nil
	case "controversial":
		return s.Controversial(), nil
	case "random":
		return s.Random(), nil
	default:
		return nil, fmt.Errorf("unknown sort %q", sort)
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
