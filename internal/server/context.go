package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/quietdesk/deskmcp/internal/calendar"
	"github.com/quietdesk/deskmcp/internal/config"
	"github.com/quietdesk/deskmcp/internal/gmail"
	"github.com/quietdesk/deskmcp/internal/google"
	"github.com/quietdesk/deskmcp/internal/instrumentation"
	"github.com/quietdesk/deskmcp/internal/tasks"
)

// ServerContext holds the shared state for the MCP server: the OAuth
// provider and the lazily created Google service clients. Clients are
// built on first use so the server can start before authentication has
// completed and report a useful error from the tool instead.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	provider *google.Provider
	sender   *gmail.SenderCache

	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger

	mu             sync.Mutex
	gmailClient    *gmail.Client
	calendarClient *calendar.Client
	tasksClient    *tasks.Client
	shutdown       bool
}

// NewServerContext creates a server context from the resolved configuration.
func NewServerContext(ctx context.Context, cfg config.Config) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:      shutdownCtx,
		cancel:   cancel,
		provider: google.NewProvider(cfg.CredentialsFile, cfg.TokenFile),
		sender:   gmail.NewSenderCache(),
		metrics:  &instrumentation.Metrics{},
	}
}

// Context returns the server's lifecycle context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Provider returns the OAuth client provider.
func (sc *ServerContext) Provider() *google.Provider {
	return sc.provider
}

// SetInstrumentation wires the metrics recorder and audit logger. Call
// before tool registration.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) {
	if metrics != nil {
		sc.metrics = metrics
		sc.provider.SetRefreshRecorder(metrics)
	}
	sc.audit = audit
}

// Metrics returns the metrics recorder. Never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.audit
}

// GmailClient returns the Gmail client, creating it on first use.
func (sc *ServerContext) GmailClient() (*gmail.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.gmailClient != nil {
		return sc.gmailClient, nil
	}

	client, err := gmail.NewClient(sc.ctx, sc.provider, sc.sender)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail client: %w", err)
	}

	sc.gmailClient = client
	return client, nil
}

// CalendarClient returns the Calendar client, creating it on first use.
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.calendarClient != nil {
		return sc.calendarClient, nil
	}

	client, err := calendar.NewClient(sc.ctx, sc.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}

	sc.calendarClient = client
	return client, nil
}

// TasksClient returns the Tasks client, creating it on first use.
func (sc *ServerContext) TasksClient() (*tasks.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.tasksClient != nil {
		return sc.tasksClient, nil
	}

	client, err := tasks.NewClient(sc.ctx, sc.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks client: %w", err)
	}

	sc.tasksClient = client
	return client, nil
}

// ResetClients drops all cached clients and sender state so the next call
// rebuilds them. Used after re-authentication.
func (sc *ServerContext) ResetClients() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.gmailClient = nil
	sc.calendarClient = nil
	sc.tasksClient = nil
	sc.sender.Invalidate()
	sc.provider.Invalidate()
}

// IsShutdown reports whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
