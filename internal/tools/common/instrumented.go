package common

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quietdesk/deskmcp/internal/instrumentation"
	"github.com/quietdesk/deskmcp/internal/logging"
	"github.com/quietdesk/deskmcp/internal/server"
)

// ToolHandler is the mcp-go handler signature used throughout the tool
// packages.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with metrics and audit
// logging. Both the tool invocation and the upstream Google API operation
// are recorded.
//
// Usage:
//
//	s.AddTool(tool, common.InstrumentedToolHandler("gmail_list_emails", "gmail", "list", sc, handler))
func InstrumentedToolHandler(
	toolName, serviceName, operation string,
	sc *server.ServerContext,
	handler ToolHandler,
) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		invocation := instrumentation.NewToolInvocation(toolName).
			WithService(serviceName, operation)

		result, err := handler(ctx, request)
		invocation.Complete(invocationError(result, err))

		status := logging.StatusSuccess
		if !invocation.Success {
			status = logging.StatusError
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, invocation.Duration)
		metrics.RecordGoogleAPIOperation(ctx, serviceName, operation, status, invocation.Duration)

		sc.AuditLogger().LogToolInvocation(invocation)

		return result, err
	}
}

// invocationError derives the audit error from the handler outcome.
// Handlers report failures as error results rather than returned errors,
// so the result's error text has to be recovered for the audit line.
func invocationError(result *mcp.CallToolResult, err error) error {
	if err != nil {
		return err
	}
	if result == nil || !result.IsError {
		return nil
	}

	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok && tc.Text != "" {
			return errors.New(tc.Text)
		}
	}
	return errors.New("tool returned an error result")
}
