package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/deskmcp/internal/config"
	"github.com/quietdesk/deskmcp/internal/instrumentation"
)

func newTestContext(t *testing.T) *ServerContext {
	t.Helper()

	dir := t.TempDir()
	sc := NewServerContext(context.Background(), config.Config{
		CredentialsFile: dir + "/credentials.json",
		TokenFile:       dir + "/token.json",
	})
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestGmailClientWithoutCredentials(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.GmailClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create Gmail client")
}

func TestCalendarClientWithoutCredentials(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.CalendarClient()
	require.Error(t, err)
}

func TestTasksClientWithoutCredentials(t *testing.T) {
	sc := newTestContext(t)

	_, err := sc.TasksClient()
	require.Error(t, err)
}

func TestMetricsNeverNil(t *testing.T) {
	sc := newTestContext(t)

	require.NotNil(t, sc.Metrics())
	assert.Nil(t, sc.AuditLogger())

	m := &instrumentation.Metrics{}
	al := instrumentation.NewAuditLogger(nil)
	sc.SetInstrumentation(m, al)
	assert.Same(t, m, sc.Metrics())
	assert.Same(t, al, sc.AuditLogger())

	// A nil metrics recorder must not clobber the existing one.
	sc.SetInstrumentation(nil, al)
	assert.Same(t, m, sc.Metrics())
}

func TestShutdownIdempotent(t *testing.T) {
	sc := newTestContext(t)

	assert.False(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context should be canceled after shutdown")
	}
}

func TestResetClients(t *testing.T) {
	sc := newTestContext(t)

	// Must be safe with nothing cached yet.
	sc.ResetClients()
}
