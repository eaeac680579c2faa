package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrCredentialsMissing indicates the OAuth client JSON file is absent.
var ErrCredentialsMissing = errors.New("google credentials file not found")

// ErrTokenMissing indicates no OAuth token has been stored yet.
var ErrTokenMissing = errors.New("google token file not found")

// ReadCredentials loads and parses the OAuth client JSON at path, requesting
// the full scope union. Returns ErrCredentialsMissing when the file is absent
// so callers can report setup problems distinctly from parse errors.
func ReadCredentials(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsMissing, path)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return cfg, nil
}

// ReadToken loads the persisted oauth2.Token at path. Returns ErrTokenMissing
// when the file is absent.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTokenMissing, path)
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return token, nil
}

// WriteToken persists a token as JSON at path, creating parent directories
// as needed. The file is written 0600 since it carries a refresh token.
func WriteToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// AuthCodeURL returns the consent URL a user must visit to authorize the
// requested scopes. Offline access is requested so a refresh token is issued.
func AuthCodeURL(cfg *oauth2.Config) string {
	return cfg.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// ExchangeAndSave exchanges an authorization code for tokens and writes them
// to tokenPath.
func ExchangeAndSave(ctx context.Context, cfg *oauth2.Config, code, tokenPath string) error {
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return WriteToken(tokenPath, token)
}

// RefreshRecorder observes OAuth token refresh outcomes. Result is
// "success" or "failure".
type RefreshRecorder interface {
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// persistingTokenSource wraps a refreshing TokenSource and writes every newly
// issued token back to disk, so a refreshed access token survives restarts.
type persistingTokenSource struct {
	path     string
	src      oauth2.TokenSource
	last     *oauth2.Token
	recorder RefreshRecorder
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.src.Token()
	if err != nil {
		p.record("failure")
		return nil, err
	}
	if p.last == nil || token.AccessToken != p.last.AccessToken {
		if err := WriteToken(p.path, token); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
		}
		p.last = token
		p.record("success")
	}
	return token, nil
}

func (p *persistingTokenSource) record(result string) {
	if p.recorder != nil {
		p.recorder.RecordOAuthTokenRefresh(context.Background(), result)
	}
}
