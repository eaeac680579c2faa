package google_tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/deskmcp/internal/config"
	"github.com/quietdesk/deskmcp/internal/server"
)

const testCredentialsJSON = `{
  "installed": {
    "client_id": "client-id.apps.googleusercontent.com",
    "client_secret": "secret",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["urn:ietf:wg:oauth:2.0:oob"]
  }
}`

func newTestServerContext(t *testing.T, withCredentials bool) *server.ServerContext {
	t.Helper()

	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.json")
	if withCredentials {
		require.NoError(t, os.WriteFile(credsPath, []byte(testCredentialsJSON), 0600))
	}

	sc := server.NewServerContext(context.Background(), config.Config{
		CredentialsFile: credsPath,
		TokenFile:       filepath.Join(dir, "token.json"),
	})
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestRegisterGoogleTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	sc := newTestServerContext(t, false)

	require.NoError(t, RegisterGoogleTools(s, sc))
}

func TestHandleGetAuthURL(t *testing.T) {
	sc := newTestServerContext(t, true)

	result, err := handleGetAuthURL(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "accounts.google.com")
	assert.Contains(t, text, "google_save_auth_code")
}

func TestHandleGetAuthURLWithoutCredentials(t *testing.T) {
	sc := newTestServerContext(t, false)

	result, err := handleGetAuthURL(context.Background(), callRequest(nil), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "credentials not found")
}

func TestHandleSaveAuthCodeRequiresCode(t *testing.T) {
	sc := newTestServerContext(t, true)

	result, err := handleSaveAuthCode(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "code is required", resultText(t, result))
}
