package gmail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietdesk/deskmcp/internal/gmail"
	"github.com/quietdesk/deskmcp/internal/server"
	"github.com/quietdesk/deskmcp/internal/tools/common"
)

// RegisterDraftTools registers the Gmail draft lifecycle tools.
func RegisterDraftTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createDraftTool := mcp.NewTool("gmail_create_draft",
		mcp.WithDescription("Create a draft email without sending it"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text body; converted to HTML with the sender's signature appended"),
		),
		mcp.WithString("threadId",
			mcp.Description("Thread to reply within; requires originalMessageId"),
		),
		mcp.WithString("originalMessageId",
			mcp.Description("ID of the message being replied to; used to build threading headers"),
		),
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandler("gmail_create_draft", "gmail", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))

	listDraftsTool := mcp.NewTool("gmail_list_drafts",
		mcp.WithDescription("List draft emails"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listDraftsTool, common.InstrumentedToolHandler("gmail_list_drafts", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDrafts(ctx, request, sc)
		}))

	getDraftTool := mcp.NewTool("gmail_get_draft",
		mcp.WithDescription("Get a draft email including its decoded body"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The draft ID"),
		),
	)

	s.AddTool(getDraftTool, common.InstrumentedToolHandler("gmail_get_draft", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDraft(ctx, request, sc)
		}))

	updateDraftTool := mcp.NewTool("gmail_update_draft",
		mcp.WithDescription("Replace the content of an existing draft"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The draft ID"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text body; converted to HTML with the sender's signature appended"),
		),
	)

	s.AddTool(updateDraftTool, common.InstrumentedToolHandler("gmail_update_draft", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateDraft(ctx, request, sc)
		}))

	deleteDraftTool := mcp.NewTool("gmail_delete_draft",
		mcp.WithDescription("Delete a draft email"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The draft ID"),
		),
	)

	s.AddTool(deleteDraftTool, common.InstrumentedToolHandler("gmail_delete_draft", "gmail", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteDraft(ctx, request, sc)
		}))

	sendDraftTool := mcp.NewTool("gmail_send_draft",
		mcp.WithDescription("Send an existing draft email"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The draft ID"),
		),
	)

	s.AddTool(sendDraftTool, common.InstrumentedToolHandler("gmail_send_draft", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendDraft(ctx, request, sc)
		}))

	return nil
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args sendEmailArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.To == "" {
		return mcp.NewToolResultError("to is required"), nil
	}
	if args.Subject == "" {
		return mcp.NewToolResultError("subject is required"), nil
	}
	if args.Body == "" {
		return mcp.NewToolResultError("body is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	draft, err := client.CreateDraft(toSendInput(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
	}

	return common.JSONResult(draft)
}

type listDraftsArgs struct {
	MaxResults int64 `mapstructure:"maxResults"`
}

func handleListDrafts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := listDraftsArgs{MaxResults: 10}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	drafts, err := client.ListDrafts(args.MaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list drafts: %v", err)), nil
	}

	return common.JSONResult(drafts)
}

type draftIDArgs struct {
	ID string `mapstructure:"id"`
}

func handleGetDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args draftIDArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	draft, err := client.GetDraft(args.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get draft: %v", err)), nil
	}

	return common.JSONResult(draft)
}

type updateDraftArgs struct {
	ID      string `mapstructure:"id"`
	To      string `mapstructure:"to"`
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
}

func handleUpdateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args updateDraftArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	if args.To == "" {
		return mcp.NewToolResultError("to is required"), nil
	}
	if args.Subject == "" {
		return mcp.NewToolResultError("subject is required"), nil
	}
	if args.Body == "" {
		return mcp.NewToolResultError("body is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	draft, err := client.UpdateDraft(args.ID, gmail.SendInput{
		To:      args.To,
		Subject: args.Subject,
		Body:    args.Body,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update draft: %v", err)), nil
	}

	return common.JSONResult(draft)
}

func handleDeleteDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args draftIDArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	if err := client.DeleteDraft(args.ID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft %s deleted successfully", args.ID)), nil
}

func handleSendDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args draftIDArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.ID == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	id, err := client.SendDraft(args.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft sent successfully. Message ID: %s", id)), nil
}
