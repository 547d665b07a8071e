package test_generators

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/jamesprial/go-reddit-feeds/pkg/types"
	"github.com/jamesprial/go-reddit-feeds/test_helpers"
)

// PostGenerator generates realistic "t3" records for testing
type PostGenerator struct {
	rand           *rand.Rand
	next           int64
	titleTemplates []string
	topics         []string
	subreddits     []string
	users          []string
}

// NewPostGenerator creates a new post generator. A zero seed picks one from the clock.
func NewPostGenerator(seed int64) *PostGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &PostGenerator{
		rand: rand.New(rand.NewSource(seed)),
		next: 1000,
		titleTemplates: []string{
			"Ask %s: what changed for you?",
			"[Discussion] %s",
			"PSA: %s",
			"TIL about %s",
			"Analysis: %s",
		},
		topics:     []string{"generics", "iterators", "the scheduler", "escape analysis", "module proxies", "slog handlers"},
		subreddits: []string{"golang", "programming", "technology", "science", "askreddit"},
		users:      []string{"gopher", "rob_pike_fan", "deleted_user", "nil_pointer", "tabs_not_spaces"},
	}
}

// Post returns one record with a fresh, unique base36 id.
func (pg *PostGenerator) Post() *types.Thing {
	pg.next++
	id := strconv.FormatInt(pg.next, 36)
	subreddit := pg.pick(pg.subreddits)

	isSelf := pg.rand.Intn(2) == 0
	selfText := ""
	if isSelf {
		selfText = "Thoughts on " + pg.pick(pg.topics) + "?"
	}

	var edited any = false
	if pg.rand.Intn(4) == 0 {
		edited = float64(1700000000 + pg.rand.Intn(100000))
	}

	return test_helpers.Thing("t3", map[string]any{
		"id":           id,
		"name":         "t3_" + id,
		"title":        fmt.Sprintf(pg.pick(pg.titleTemplates), pg.pick(pg.topics)),
		"author":       pg.pick(pg.users),
		"subreddit":    subreddit,
		"selftext":     selfText,
		"is_self":      isSelf,
		"permalink":    "/r/" + subreddit + "/comments/" + id + "/",
		"url":          "https://www.reddit.com/r/" + subreddit + "/comments/" + id + "/",
		"score":        pg.rand.Intn(5000) - 100,
		"ups":          pg.rand.Intn(5000),
		"num_comments": pg.rand.Intn(300),
		"created_utc":  float64(1600000000 + pg.rand.Intn(100000000)),
		"edited":       edited,
	})
}

// Posts returns count records.
func (pg *PostGenerator) Posts(count int) []*types.Thing {
	things := make([]*types.Thing, count)
	for i := range things {
		things[i] = pg.Post()
	}
	return things
}

// Pages splits total generated posts into page responses of at most perPage,
// each carrying the fullname of its last post as the next cursor, followed
// by one final empty page. It also returns the ids in server order.
func (pg *PostGenerator) Pages(total, perPage int) ([]*test_helpers.MockResponse, []string) {
	things := pg.Posts(total)
	ids := make([]string, 0, total)
	var pages []*test_helpers.MockResponse

	for start := 0; start < len(things); start += perPage {
		end := min(start+perPage, len(things))
		page := things[start:end]
		for _, thing := range page {
			ids = append(ids, IDOf(thing))
		}
		pages = append(pages, test_helpers.Listing("t3_"+IDOf(page[len(page)-1]), page...))
	}
	pages = append(pages, test_helpers.Listing(""))
	return pages, ids
}

func (pg *PostGenerator) pick(values []string) string {
	return values[pg.rand.Intn(len(values))]
}
