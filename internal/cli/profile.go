package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sangkips/loyalty-admin/internal/infrastructure/upstream"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenEnv overrides every token in the profile
const TokenEnv = "ADMIN_TOKEN"

// Profile is the operator's ~/.loyalty-admin/config.toml. The token may sit
// under any of the keys older console builds wrote.
type Profile struct {
	BaseURL        string              `toml:"base_url"`
	TimeoutSeconds int                 `toml:"timeout_seconds"`
	Token          string              `toml:"token"`
	AuthToken      string              `toml:"auth_token"`
	AccessToken    string              `toml:"access_token"`
	AdminToken     string              `toml:"admin_token"`
	OAuth          *OAuthProfile       `toml:"oauth"`
	Paths          map[string][]string `toml:"paths"`
}

// OAuthProfile configures the client-credentials grant for unattended use
type OAuthProfile struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
}

// DefaultProfilePath is $LOYALTY_ADMIN_HOME/config.toml or ~/.loyalty-admin/config.toml
func DefaultProfilePath() string {
	if env := os.Getenv("LOYALTY_ADMIN_HOME"); env != "" {
		return filepath.Join(env, "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".loyalty-admin", "config.toml")
}

// LoadProfile reads the profile at path. A missing file is an empty profile.
func LoadProfile(path string) (*Profile, error) {
	p := &Profile{}
	if _, err := toml.DecodeFile(path, p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	return p, nil
}

// StaticToken returns the token to send: $ADMIN_TOKEN first, then the profile
// keys in the order token, auth_token, access_token, admin_token
func (p *Profile) StaticToken(getenv func(string) string) string {
	candidates := []string{getenv(TokenEnv), p.Token, p.AuthToken, p.AccessToken, p.AdminToken}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

// Authorize attaches the operator's credentials to ctx
func (p *Profile) Authorize(ctx context.Context, getenv func(string) string) context.Context {
	if token := p.StaticToken(getenv); token != "" {
		return upstream.WithToken(ctx, token)
	}
	if p.OAuth != nil && p.OAuth.ClientID != "" && p.OAuth.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     p.OAuth.ClientID,
			ClientSecret: p.OAuth.ClientSecret,
			TokenURL:     p.OAuth.TokenURL,
			Scopes:       p.OAuth.Scopes,
		}
		return upstream.WithTokenSource(ctx, cc.TokenSource(ctx))
	}
	return ctx
}
