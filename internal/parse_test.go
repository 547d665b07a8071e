package internal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jamesprial/go-reddit-feeds/pkg/types"
)

func TestParser_ParseLink(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		thing    *types.Thing
		wantErr  string
		wantID   string
		wantEdit bool
	}{
		{
			name:    "nil thing",
			thing:   nil,
			wantErr: "nil",
		},
		{
			name:    "wrong kind",
			thing:   &types.Thing{Kind: "t1", Data: json.RawMessage(`{"id":"c1"}`)},
			wantErr: "expected t3",
		},
		{
			name:    "malformed data",
			thing:   &types.Thing{Kind: "t3", Data: json.RawMessage(`{"id": 5}`)},
			wantErr: "failed to parse Link data",
		},
		{
			name:    "missing id",
			thing:   &types.Thing{Kind: "t3", Data: json.RawMessage(`{"title":"x"}`)},
			wantErr: "no id",
		},
		{
			name:     "edited timestamp",
			thing:    &types.Thing{Kind: "t3", Data: json.RawMessage(`{"id":"abc","title":"Hello","edited":1700000000.5,"distinguished":null}`)},
			wantID:   "abc",
			wantEdit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := parser.ParseLink(tt.thing)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if post.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", post.ID, tt.wantID)
			}
			if post.Edited.IsEdited != tt.wantEdit {
				t.Errorf("Edited.IsEdited = %v, want %v", post.Edited.IsEdited, tt.wantEdit)
			}
		})
	}
}

func TestParser_ParseComment(t *testing.T) {
	parser := NewParser()

	thing := &types.Thing{
		Kind: "t1",
		Data: json.RawMessage(`{"id":"c1","author":"someone","body":"hi","parent_id":"t3_abc","score":4,"replies":""}`),
	}
	comment, err := parser.ParseComment(thing)
	if err != nil {
		t.Fatalf("ParseComment returned error: %v", err)
	}
	if comment.ID != "c1" || comment.Body != "hi" || comment.ParentID != "t3_abc" {
		t.Errorf("unexpected comment: %+v", comment)
	}

	if _, err := parser.ParseComment(&types.Thing{Kind: "more", Data: json.RawMessage(`{}`)}); err == nil {
		t.Error("expected error for kind more")
	}
}

func TestParser_ParseAccount(t *testing.T) {
	parser := NewParser()

	account, err := parser.ParseAccount([]byte(`{"id":"u1","name":"spez","link_karma":10,"comment_karma":20,"has_verified_email":null}`))
	if err != nil {
		t.Fatalf("ParseAccount returned error: %v", err)
	}
	if account.Name != "spez" || account.LinkKarma != 10 || account.CommentKarma != 20 {
		t.Errorf("unexpected account: %+v", account)
	}
	if account.HasVerifiedEmail != nil {
		t.Errorf("expected nil HasVerifiedEmail, got %v", *account.HasVerifiedEmail)
	}

	if _, err := parser.ParseAccount([]byte(`{}`)); err == nil {
		t.Error("expected error for account without name")
	}
	if _, err := parser.ParseAccount([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for non-object body")
	}
}

func TestParser_CountReplies(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "absent", raw: "", want: 0},
		{name: "empty string", raw: `""`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "listing", raw: `{"kind":"Listing","data":{"children":[{"kind":"t1","data":{}},{"kind":"t1","data":{}},{"kind":"more","data":{}}]}}`, want: 2},
		{name: "garbage", raw: `[`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parser.CountReplies(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("CountReplies = %d, want %d", got, tt.want)
			}
		})
	}
}
