package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ConfigError
		contains []string
	}{
		{
			name:     "with field and message",
			err:      ConfigError{Field: "UserAgent", Message: "cannot be empty"},
			contains: []string{"config error", "UserAgent", "cannot be empty"},
		},
		{
			name:     "only message",
			err:      ConfigError{Message: "invalid configuration"},
			contains: []string{"config error", "invalid configuration"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("ConfigError.Error() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestAuthError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      AuthError
		contains []string
		exact    string
	}{
		{
			name: "full error with all fields",
			err: AuthError{
				StatusCode: 401,
				Message:    "unauthorized",
				Body:       `{"error": "invalid_grant"}`,
				Err:        errors.New("connection failed"),
			},
			contains: []string{"auth error", "401", "unauthorized", "invalid_grant", "connection failed"},
		},
		{
			name:     "upstream reason only",
			err:      AuthError{Message: "credentials are most likely wrong, reddit returned: invalid_grant"},
			contains: []string{"auth error", "invalid_grant"},
		},
		{
			name:  "empty",
			err:   AuthError{},
			exact: "auth error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if tt.exact != "" && result != tt.exact {
				t.Errorf("AuthError.Error() = %q, want %q", result, tt.exact)
			}
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("AuthError.Error() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	base := errors.New("root cause")

	tests := []struct {
		name string
		err  error
	}{
		{"auth", &AuthError{Err: base}},
		{"transport", &TransportError{Op: "GET", URL: "https://oauth.reddit.com/hot", Err: base}},
		{"parse", &ParseError{Operation: "listing", Err: base}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, base) {
				t.Errorf("errors.Is(%T, base) = false, want true", tt.err)
			}
		})
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Operation: "listing", Message: "bad envelope", Err: errors.New("unexpected EOF")}
	got := err.Error()
	want := "parse error during listing: bad envelope: unexpected EOF"
	if got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestUnexpectedStatusError_Error(t *testing.T) {
	err := &UnexpectedStatusError{StatusCode: 503, URL: "https://oauth.reddit.com/hot"}
	if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "/hot") {
		t.Errorf("UnexpectedStatusError.Error() = %q, want status and URL", err.Error())
	}
}

func TestErrNotLoggedIn(t *testing.T) {
	var stateErr *StateError
	if !errors.As(ErrNotLoggedIn, &stateErr) {
		t.Fatalf("ErrNotLoggedIn should be a *StateError")
	}
	if stateErr.Operation != "me" {
		t.Errorf("Operation = %q, want %q", stateErr.Operation, "me")
	}
}

func TestInvariantError_Error(t *testing.T) {
	err := &InvariantError{Message: "token absent after login"}
	if !strings.HasPrefix(err.Error(), "invariant broken: token absent after login") {
		t.Errorf("InvariantError.Error() = %q", err.Error())
	}
}
