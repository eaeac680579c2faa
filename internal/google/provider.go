package google

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// Provider lazily produces one authenticated HTTP client shared by the mail,
// calendar and tasks services. EnsureReady is idempotent: the credential and
// token files are parsed once and the result is memoized. Dispatch is
// sequential today, so the mutex is insurance for a future parallel server,
// not a present requirement.
type Provider struct {
	credentialsPath string
	tokenPath       string

	mu       sync.Mutex
	cfg      *oauth2.Config
	client   *http.Client
	recorder RefreshRecorder
}

// NewProvider creates a Provider for the given credential file paths. No
// files are touched until EnsureReady or Client is called, so a misconfigured
// setup is discovered at call time and reported as a tool error, never as a
// startup crash.
func NewProvider(credentialsPath, tokenPath string) *Provider {
	return &Provider{
		credentialsPath: credentialsPath,
		tokenPath:       tokenPath,
	}
}

// CredentialsPath returns the configured OAuth client JSON path.
func (p *Provider) CredentialsPath() string {
	return p.credentialsPath
}

// TokenPath returns the configured token file path.
func (p *Provider) TokenPath() string {
	return p.tokenPath
}

// SetRefreshRecorder wires a recorder for token refresh outcomes. Only
// clients built after the call observe it, so wire before the first
// Client call.
func (p *Provider) SetRefreshRecorder(recorder RefreshRecorder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recorder = recorder
}

// Config loads (and memoizes) the OAuth client configuration.
func (p *Provider) Config() (*oauth2.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configLocked()
}

func (p *Provider) configLocked() (*oauth2.Config, error) {
	if p.cfg != nil {
		return p.cfg, nil
	}
	cfg, err := ReadCredentials(p.credentialsPath)
	if err != nil {
		return nil, err
	}
	p.cfg = cfg
	return cfg, nil
}

// EnsureReady parses the credential and token files if it has not already
// done so. It fails with ErrCredentialsMissing or ErrTokenMissing when setup
// files are absent.
func (p *Provider) EnsureReady(ctx context.Context) error {
	_, err := p.Client(ctx)
	return err
}

// Client returns the memoized authenticated HTTP client, building it on
// first use. The underlying TokenSource refreshes expired access tokens and
// persists them back to the token file.
func (p *Provider) Client(ctx context.Context) (*http.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	cfg, err := p.configLocked()
	if err != nil {
		return nil, err
	}

	token, err := ReadToken(p.tokenPath)
	if err != nil {
		return nil, err
	}

	src := &persistingTokenSource{
		path:     p.tokenPath,
		src:      cfg.TokenSource(ctx, token),
		last:     token,
		recorder: p.recorder,
	}
	p.client = oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, src))
	return p.client, nil
}

// Invalidate drops the memoized client and configuration so the next call
// re-reads the files. Used after the token file is rewritten by the auth
// flow.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = nil
	p.client = nil
}
