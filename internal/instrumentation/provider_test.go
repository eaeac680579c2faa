package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(context.Background(), "test-service", "0.0.1", false)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	// No-op recorders must be safe to call.
	p.Metrics().RecordToolInvocation(context.Background(), "gmail_list_emails", "success", 0)
	p.Metrics().RecordGoogleAPIOperation(context.Background(), "gmail", "list", "success", 0)
	p.Metrics().RecordOAuthTokenRefresh(context.Background(), "success")

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderEnabled(t *testing.T) {
	p, err := NewProvider(context.Background(), "test-service", "0.0.1", true)
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	assert.True(t, p.Enabled())
	require.NotNil(t, p.Metrics())

	p.Metrics().RecordToolInvocation(context.Background(), "gmail_list_emails", "success", 0)
}
