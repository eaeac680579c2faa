package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietdesk/deskmcp/internal/server"
	"github.com/quietdesk/deskmcp/internal/tools/common"
)

// RegisterLabelTools registers the Gmail label tools.
func RegisterLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	modifyLabelsTool := mcp.NewTool("gmail_modify_labels",
		mcp.WithDescription("Add and/or remove labels on a message. Use label IDs such as INBOX, UNREAD, STARRED or custom label IDs from gmail_list_labels"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The message ID"),
		),
		mcp.WithString("addLabels",
			mcp.Description("Label ID (string) or array of label IDs to add"),
		),
		mcp.WithString("removeLabels",
			mcp.Description("Label ID (string) or array of label IDs to remove"),
		),
	)

	s.AddTool(modifyLabelsTool, common.InstrumentedToolHandler("gmail_modify_labels", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyLabels(ctx, request, sc)
		}))

	listLabelsTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all labels in the mailbox, system and user-created"),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandler("gmail_list_labels", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	return nil
}

func handleModifyLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, _ := args["id"].(string)
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	// Both accept a bare string or an array; at least one must be present.
	var add, remove []string
	var err error
	if raw, ok := args["addLabels"]; ok {
		add, err = common.ParseStringOrArray(raw, "addLabels")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if raw, ok := args["removeLabels"]; ok {
		remove, err = common.ParseStringOrArray(raw, "removeLabels")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if len(add) == 0 && len(remove) == 0 {
		return mcp.NewToolResultError("at least one of addLabels or removeLabels is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	message, err := client.ModifyLabels(id, add, remove)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to modify labels: %v", err)), nil
	}

	return common.JSONResult(message)
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	labels, err := client.ListLabels()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
	}

	return common.JSONResult(labels)
}
