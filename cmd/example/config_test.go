package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reddit.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USERNAME", "REDDIT_PASSWORD", "REDDIT_REFRESH_TOKEN", "REDDIT_USER_AGENT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
user_agent: "test:graw:v0 (by /u/tester)"
client_id: id
client_secret: secret
username: someone
password: hunter2
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.ClientID != "id" || cfg.ClientSecret != "secret" || cfg.Username != "someone" || cfg.Password != "hunter2" {
		t.Errorf("unexpected credentials: %+v", cfg.Credentials)
	}
	if cfg.UserAgent != "test:graw:v0 (by /u/tester)" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if got := cfg.authenticator(nil).Kind(); got != auth.KindScript {
		t.Errorf("authenticator kind = %v, want script", got)
	}
}

func TestLoadConfig_EnvFillsGaps(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDDIT_CLIENT_ID", "env-id")
	t.Setenv("REDDIT_REFRESH_TOKEN", "env-refresh")

	cfg, err := loadConfig(writeConfig(t, `client_secret: ""`))
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.ClientID != "env-id" || cfg.RefreshToken != "env-refresh" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	a := cfg.authenticator(nil)
	if a.Kind() != auth.KindUser {
		t.Errorf("authenticator kind = %v, want user", a.Kind())
	}
	if refresh, ok := a.RefreshToken(); !ok || refresh != "env-refresh" {
		t.Errorf("RefreshToken = %q, %v", refresh, ok)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := loadConfig(""); err == nil {
		t.Error("expected an error without a client id")
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := loadConfig(writeConfig(t, "client_id: [unterminated")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestAuthenticatorSelection(t *testing.T) {
	tests := []struct {
		name string
		cfg  fileConfig
		want auth.Kind
	}{
		{name: "anonymous installed app", cfg: fileConfig{}, want: auth.KindApplication},
		{name: "client credentials", want: auth.KindApplication},
		{name: "refresh token wins over secret", cfg: fileConfig{RefreshToken: "r"}, want: auth.KindUser},
	}
	tests[1].cfg.ClientSecret = "secret"
	tests[2].cfg.ClientSecret = "secret"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.ClientID = "id"
			if got := tt.cfg.authenticator(nil).Kind(); got != tt.want {
				t.Errorf("Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickFeed(t *testing.T) {
	if _, err := pickFeed(nil, "sideways"); err == nil {
		t.Error("expected an error for an unknown sort")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("one\ntwo"); got != "one ..." {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q", got)
	}
}
