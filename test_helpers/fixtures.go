package test_helpers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

// TokenResponse is a successful token exchange issuing accessToken.
func TokenResponse(accessToken string) *MockResponse {
	return JSON(http.StatusOK, fmt.Sprintf(`{"access_token": %q, "token_type": "bearer", "expires_in": 3600, "scope": "*"}`, accessToken))
}

// JSON is a response with the given status and body.
func JSON(status int, body string) *MockResponse {
	return &MockResponse{Status: status, Body: body}
}

// Status is a response with an empty JSON object body.
func Status(status int) *MockResponse {
	return &MockResponse{Status: status, Body: `{}`}
}

// Thing builds a raw record of the given kind around data.
func Thing(kind string, data map[string]any) *types.Thing {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return &types.Thing{Kind: kind, Data: raw}
}

// PostThing builds a "t3" record.
func PostThing(id, subreddit, title string) *types.Thing {
	return Thing("t3", map[string]any{
		"id":           id,
		"name":         "t3_" + id,
		"title":        title,
		"author":       "author_" + id,
		"subreddit":    subreddit,
		"permalink":    "/r/" + subreddit + "/comments/" + id + "/",
		"score":        10,
		"ups":          12,
		"downs":        2,
		"num_comments": 3,
		"created_utc":  1700000000.0,
		"edited":       false,
	})
}

// CommentThing builds a "t1" record.
func CommentThing(id, body string) *types.Thing {
	return Thing("t1", map[string]any{
		"id":        id,
		"name":      "t1_" + id,
		"author":    "commenter_" + id,
		"body":      body,
		"parent_id": "t3_parent",
		"score":     5,
		"replies":   "",
	})
}

// MoreThing builds a "more" placeholder record.
func MoreThing(ids ...string) *types.Thing {
	return Thing("more", map[string]any{"count": len(ids), "children": ids})
}

// ListingBody encodes one page envelope. An empty after is sent as null.
func ListingBody(after string, children ...*types.Thing) string {
	listing := types.Listing{Kind: "Listing", Data: types.ListingData{After: after, Children: children}}
	if listing.Data.Children == nil {
		listing.Data.Children = []*types.Thing{}
	}

	raw, err := json.Marshal(listing)
	if err != nil {
		panic(err)
	}

	if after == "" {
		var generic map[string]any
		if err := json.Unmarshal(raw, &generic); err != nil {
			panic(err)
		}
		data := generic["data"].(map[string]any)
		data["after"] = nil
		data["before"] = nil
		if raw, err = json.Marshal(generic); err != nil {
			panic(err)
		}
	}
	return string(raw)
}

// CommentsBody encodes the [post listing, comment listing] pair served by the
// comments endpoint.
func CommentsBody(post *types.Thing, after string, comments ...*types.Thing) string {
	return "[" + ListingBody("", post) + "," + ListingBody(after, comments...) + "]"
}

// Listing is a 200 response carrying one page.
func Listing(after string, children ...*types.Thing) *MockResponse {
	return JSON(http.StatusOK, ListingBody(after, children...))
}

// Credentials returns script credentials accepted by the mock.
func Credentials() types.Credentials {
	return types.Credentials{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		Username:     "test_user",
		Password:     "test_pass",
	}
}

// ScriptAuthenticator returns a password-grant authenticator pointed at ms.
func ScriptAuthenticator(ms *MockServer) *auth.ScriptAuthenticator {
	return auth.NewScriptAuthenticator(Credentials(), auth.WithTokenURL(ms.TokenURL()))
}

// ApplicationAuthenticator returns an application-only authenticator pointed at ms.
func ApplicationAuthenticator(ms *MockServer) *auth.ApplicationAuthenticator {
	return auth.NewApplicationAuthenticator("test_client_id", auth.WithTokenURL(ms.TokenURL()), auth.WithDeviceID("test-device"))
}
