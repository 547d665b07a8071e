package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jamesprial/go-reddit-feeds/pkg/auth"
	"github.com/jamesprial/go-reddit-feeds/pkg/types"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML credentials file. Environment variables fill any
// field the file leaves empty.
//
//	user_agent: "linux:graw-example:v0.3.0 (by /u/you)"
//	client_id: "..."
//	client_secret: "..."
//	username: "..."
//	password: "..."
//	refresh_token: "..."
type fileConfig struct {
	types.Credentials `yaml:",inline"`

	UserAgent    string `yaml:"user_agent"`
	RefreshToken string `yaml:"refresh_token"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	fromEnv(&cfg.ClientID, "REDDIT_CLIENT_ID")
	fromEnv(&cfg.ClientSecret, "REDDIT_CLIENT_SECRET")
	fromEnv(&cfg.Username, "REDDIT_USERNAME")
	fromEnv(&cfg.Password, "REDDIT_PASSWORD")
	fromEnv(&cfg.RefreshToken, "REDDIT_REFRESH_TOKEN")
	fromEnv(&cfg.UserAgent, "REDDIT_USER_AGENT")

	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client_id is required (config file or REDDIT_CLIENT_ID)")
	}
	return cfg, nil
}

func fromEnv(field *string, key string) {
	if *field == "" {
		*field = os.Getenv(key)
	}
}

// authenticator picks the grant matching the credentials present: a
// username and password mean a script app, a refresh token an authorized
// user, and anything else application-only access.
func (c *fileConfig) authenticator(logger *slog.Logger) auth.Authenticator {
	switch {
	case c.Username != "" && c.Password != "":
		return auth.NewScriptAuthenticator(c.Credentials, auth.WithLogger(logger))
	case c.RefreshToken != "":
		return auth.NewUserAuthenticator(c.RefreshToken, c.ClientID, auth.WithLogger(logger))
	case c.ClientSecret != "":
		return auth.NewApplicationAuthenticator(c.ClientID, auth.WithClientSecret(c.ClientSecret), auth.WithLogger(logger))
	default:
		return auth.NewApplicationAuthenticator(c.ClientID, auth.WithDeviceID(auth.NewDeviceID()), auth.WithLogger(logger))
	}
}
