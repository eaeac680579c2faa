package tasks_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdesk/deskmcp/internal/config"
	"github.com/quietdesk/deskmcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	dir := t.TempDir()
	sc := server.NewServerContext(context.Background(), config.Config{
		CredentialsFile: dir + "/credentials.json",
		TokenFile:       dir + "/token.json",
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

func TestRegisterTasksTools(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1")
	sc := newTestServerContext(t)

	require.NoError(t, RegisterTasksTools(s, sc))
}

func TestHandleGetTaskRequiresTaskID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetTask(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "taskId is required", resultText(t, result))
}

func TestHandleCreateTaskRequiresTitle(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleCreateTask(context.Background(), callRequest(map[string]any{
		"notes": "no title here",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "title is required", resultText(t, result))
}

func TestHandleUpdateTaskRequiresAField(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleUpdateTask(context.Background(), callRequest(map[string]any{
		"taskId": "t1",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "at least one of")
}

func TestHandleUpdateTaskRejectsUnknownStatus(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleUpdateTask(context.Background(), callRequest(map[string]any{
		"taskId": "t1",
		"status": "done",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "status must be")
}

func TestHandleListTasksWithoutCredentials(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleListTasks(context.Background(), callRequest(map[string]any{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "credentials not found")
}
