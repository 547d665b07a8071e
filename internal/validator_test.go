package internal

import (
	"strings"
	"testing"

	pkgerrs "github.com/jamesprial/go-reddit-feeds/pkg/errors"
)

func TestValidator_ValidateSubredditName(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		input     string
		wantError bool
		errorMsg  string
	}{
		// Valid cases
		{name: "valid minimum length", input: "tv", wantError: false},
		{name: "valid maximum length", input: "abcdefghijklmnopqrstu", wantError: false},
		{name: "valid with numbers", input: "test123", wantError: false},
		{name: "valid with underscore", input: "test_sub", wantError: false},
		{name: "valid mixed case", input: "TestSub", wantError: false},
		{name: "multireddit", input: "golang+rust", wantError: false},

		// Invalid cases
		{name: "empty string", input: "", wantError: true, errorMsg: "cannot be empty"},
		{name: "too short", input: "a", wantError: true, errorMsg: "at least 2 characters"},
		{name: "too long", input: "abcdefghijklmnopqrstuv", wantError: true, errorMsg: "cannot exceed 21 characters"},
		{name: "starts with underscore", input: "_test", wantError: true, errorMsg: "cannot start with underscore"},
		{name: "empty multireddit part", input: "golang+", wantError: true, errorMsg: "at least 2 characters"},
		{name: "contains dash", input: "test-sub", wantError: true, errorMsg: "invalid character"},
		{name: "contains slash", input: "test/sub", wantError: true, errorMsg: "invalid character"},
		{name: "path traversal", input: "../etc", wantError: true, errorMsg: "invalid character"},
		{name: "contains unicode", input: "test™", wantError: true, errorMsg: "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSubredditName(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorMsg)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				if _, ok := err.(*pkgerrs.ConfigError); !ok {
					t.Errorf("expected *pkgerrs.ConfigError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidator_ClampLimit(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		input int
		want  int
	}{
		{input: -5, want: 1},
		{input: 0, want: 1},
		{input: 1, want: 1},
		{input: 25, want: 25},
		{input: 100, want: 100},
		{input: 101, want: 100},
		{input: 1 << 20, want: 100},
	}

	for _, tt := range tests {
		if got := v.ClampLimit(tt.input); got != tt.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestValidator_ValidatePostID(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{name: "base36", input: "abc123", wantError: false},
		{name: "upper case", input: "ABC", wantError: false},
		{name: "empty", input: "", wantError: true},
		{name: "fullname prefix", input: "t3_abc", wantError: true},
		{name: "too long", input: strings.Repeat("a", 17), wantError: true},
		{name: "path", input: "abc/../x", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePostID(tt.input)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidatePostID(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
		})
	}
}

func TestValidator_ValidateUserAgent(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		input     string
		wantError bool
		errorMsg  string
	}{
		{name: "valid", input: "linux:feeds:v1.0 (by /u/someone)", wantError: false},
		{name: "empty", input: "", wantError: true, errorMsg: "cannot be empty"},
		{name: "carriage return", input: "agent\rX-Injected: 1", wantError: true, errorMsg: "newline"},
		{name: "line feed", input: "agent\nX-Injected: 1", wantError: true, errorMsg: "newline"},
		{name: "too long", input: strings.Repeat("a", 257), wantError: true, errorMsg: "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUserAgent(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorMsg)
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
