package test_generators

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/jamesprial/go-reddit-feeds/pkg/types"
	"github.com/jamesprial/go-reddit-feeds/test_helpers"
)

// CommentGenerator generates "t1" records, optionally interleaved with
// "more" stubs the way Reddit truncates long threads.
type CommentGenerator struct {
	rand      *rand.Rand
	next      int64
	templates []string
}

// NewCommentGenerator creates a new comment generator. A zero seed picks one from the clock.
func NewCommentGenerator(seed int64) *CommentGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &CommentGenerator{
		rand: rand.New(rand.NewSource(seed)),
		next: 5000,
		templates: []string{
			"This is the way.",
			"Source?",
			"Have you tried turning it off and on again?",
			"Multi-line answer:\n\nfirst, read the docs.",
			"<not escaped> because raw_json is set",
		},
	}
}

// Comment returns one comment with a fresh id and up to two inline replies.
func (cg *CommentGenerator) Comment() (*types.Thing, int) {
	cg.next++
	id := strconv.FormatInt(cg.next, 36)

	var replies any = ""
	n := cg.rand.Intn(3)
	if n > 0 {
		children := make([]any, n)
		for i := range children {
			children[i] = map[string]any{"kind": "t1", "data": map[string]any{"id": id + "r" + strconv.Itoa(i)}}
		}
		replies = map[string]any{"kind": "Listing", "data": map[string]any{"children": children}}
	}

	return test_helpers.Thing("t1", map[string]any{
		"id":        id,
		"name":      "t1_" + id,
		"author":    "commenter" + strconv.Itoa(cg.rand.Intn(50)),
		"body":      cg.templates[cg.rand.Intn(len(cg.templates))],
		"parent_id": "t3_parent",
		"score":     cg.rand.Intn(200) - 20,
		"depth":     0,
		"replies":   replies,
	}), n
}

// Thread returns count comments with a "more" stub after roughly every
// fifth one, and the id and inline reply count of each comment in order.
func (cg *CommentGenerator) Thread(count int) (things []*types.Thing, ids []string, replies []int) {
	for i := 0; i < count; i++ {
		comment, n := cg.Comment()
		things = append(things, comment)
		ids = append(ids, IDOf(comment))
		replies = append(replies, n)
		if cg.rand.Intn(5) == 0 {
			things = append(things, test_helpers.MoreThing("x"+strconv.Itoa(i)))
		}
	}
	return things, ids, replies
}

// IDOf returns the id inside a generated record.
func IDOf(thing *types.Thing) string {
	var data struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(thing.Data, &data); err != nil {
		panic(err)
	}
	return data.ID
}
