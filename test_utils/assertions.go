package test_utils

import (
	"fmt"
	"regexp"
	"strings"

	graw "github.com/jamesprial/go-reddit-feeds"
)

var (
	// base36Regex matches base36 encoded IDs (0-9, a-z)
	base36Regex = regexp.MustCompile(`^[0-9a-z]+$`)

	// fullnameRegex matches Reddit fullname IDs (type prefix + base36 ID)
	fullnameRegex = regexp.MustCompile(`^t[1-6]_[0-9a-z]+$`)
)

func AssertValidId(id string) error {
	if id == "" {
		return fmt.Errorf("id is empty")
	}
	if !base36Regex.MatchString(id) {
		return fmt.Errorf("id has invalid format: %s", id)
	}
	return nil
}

func AssertValidFullname(fullname string) error {
	if fullname == "" {
		return fmt.Errorf("fullname is empty")
	}
	if !fullnameRegex.MatchString(fullname) {
		return fmt.Errorf("fullname has invalid format: %s", fullname)
	}
	return nil
}

// AssertValidPost checks the identity fields every mapped post must carry.
func AssertValidPost(post *graw.Post) error {
	if post == nil {
		return fmt.Errorf("post is nil")
	}
	if post.Kind != "t3" {
		return fmt.Errorf("post %s has kind %q, want t3", post.ID, post.Kind)
	}
	if err := AssertValidId(post.ID); err != nil {
		return fmt.Errorf("post ID is invalid: %v", err)
	}
	if err := AssertValidFullname(post.Fullname()); err != nil {
		return fmt.Errorf("post fullname is invalid: %v", err)
	}
	return AssertStringNotEmpty(post.Title, "Title")
}

// AssertValidComment checks the identity fields every mapped comment must carry.
func AssertValidComment(comment *graw.Comment) error {
	if comment == nil {
		return fmt.Errorf("comment is nil")
	}
	if comment.Kind != "t1" {
		return fmt.Errorf("comment %s has kind %q, want t1", comment.ID, comment.Kind)
	}
	if err := AssertValidId(comment.ID); err != nil {
		return fmt.Errorf("comment ID is invalid: %v", err)
	}
	return AssertValidFullname(comment.Fullname())
}

// AssertPostIDs checks that posts carry exactly the wanted ids, in order.
func AssertPostIDs(posts []*graw.Post, want []string) error {
	got := make([]string, len(posts))
	for i, post := range posts {
		if err := AssertValidPost(post); err != nil {
			return fmt.Errorf("post %d: %w", i, err)
		}
		got[i] = post.ID
	}
	return CompareStringLists(want, got)
}

// AssertCommentIDs checks that comments carry exactly the wanted ids, in order.
func AssertCommentIDs(comments []*graw.Comment, want []string) error {
	got := make([]string, len(comments))
	for i, comment := range comments {
		if err := AssertValidComment(comment); err != nil {
			return fmt.Errorf("comment %d: %w", i, err)
		}
		got[i] = comment.ID
	}
	return CompareStringLists(want, got)
}

func AssertStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is empty", fieldName)
	}
	return nil
}

// CompareStringLists reports the first difference between two lists.
func CompareStringLists(expected, actual []string) error {
	if len(expected) != len(actual) {
		return fmt.Errorf("length mismatch: expected %d, got %d", len(expected), len(actual))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return fmt.Errorf("index %d: expected %q, got %q", i, expected[i], actual[i])
		}
	}
	return nil
}
