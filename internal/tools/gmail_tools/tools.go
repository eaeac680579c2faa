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

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if err := RegisterDraftTools(s, sc); err != nil {
		return fmt.Errorf("failed to register draft tools: %w", err)
	}

	if err := RegisterLabelTools(s, sc); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}

	listEmailsTool := mcp.NewTool("gmail_list_emails",
		mcp.WithDescription("List emails from a Gmail folder"),
		mcp.WithString("folder",
			mcp.Description("Folder to list: inbox, sent, unread, starred, important, trash, spam, all (default: 'inbox')"),
		),
		mcp.WithString("query",
			mcp.Description("Additional Gmail search query appended to the folder filter (e.g., 'from:user@example.com')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(listEmailsTool, common.InstrumentedToolHandler("gmail_list_emails", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEmails(ctx, request, sc)
		}))

	getEmailTool := mcp.NewTool("gmail_get_email",
		mcp.WithDescription("Get a single email including its decoded body"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The message ID"),
		),
	)

	s.AddTool(getEmailTool, common.InstrumentedToolHandler("gmail_get_email", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEmail(ctx, request, sc)
		}))

	searchEmailsTool := mcp.NewTool("gmail_search_emails",
		mcp.WithDescription("Search emails with a Gmail query string"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'from:user@example.com has:attachment')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(searchEmailsTool, common.InstrumentedToolHandler("gmail_search_emails", "gmail", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEmails(ctx, request, sc)
		}))

	getThreadTool := mcp.NewTool("gmail_get_thread",
		mcp.WithDescription("Get all messages in an email thread"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The thread ID"),
		),
	)

	s.AddTool(getThreadTool, common.InstrumentedToolHandler("gmail_get_thread", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetThread(ctx, request, sc)
		}))

	sendEmailTool := mcp.NewTool("gmail_send_email",
		mcp.WithDescription("Send an email, optionally as a reply within an existing thread"),
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

	s.AddTool(sendEmailTool, common.InstrumentedToolHandler("gmail_send_email", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		}))

	return nil
}

type listEmailsArgs struct {
	Folder     string `mapstructure:"folder"`
	Query      string `mapstructure:"query"`
	MaxResults int64  `mapstructure:"maxResults"`
}

func handleListEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := listEmailsArgs{Folder: "inbox", MaxResults: 10}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	messages, err := client.ListEmails(args.MaxResults, args.Folder, args.Query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list emails: %v", err)), nil
	}

	return common.JSONResult(messages)
}

type getEmailArgs struct {
	ID string `mapstructure:"id"`
}

func handleGetEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args getEmailArgs
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

	message, err := client.GetEmail(args.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get email: %v", err)), nil
	}

	return common.JSONResult(message)
}

type searchEmailsArgs struct {
	Query      string `mapstructure:"query"`
	MaxResults int64  `mapstructure:"maxResults"`
}

func handleSearchEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := searchEmailsArgs{MaxResults: 10}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	client, err := sc.GmailClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Gmail", err), nil
	}

	messages, err := client.SearchEmails(args.Query, args.MaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search emails: %v", err)), nil
	}

	return common.JSONResult(messages)
}

type getThreadArgs struct {
	ID string `mapstructure:"id"`
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args getThreadArgs
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

	thread, err := client.GetThread(args.ID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get thread: %v", err)), nil
	}

	return common.JSONResult(thread)
}

func toSendInput(args sendEmailArgs) gmail.SendInput {
	return gmail.SendInput{
		To:                args.To,
		Subject:           args.Subject,
		Body:              args.Body,
		ThreadID:          args.ThreadID,
		OriginalMessageID: args.OriginalMessageID,
	}
}

type sendEmailArgs struct {
	To                string `mapstructure:"to"`
	Subject           string `mapstructure:"subject"`
	Body              string `mapstructure:"body"`
	ThreadID          string `mapstructure:"threadId"`
	OriginalMessageID string `mapstructure:"originalMessageId"`
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	id, err := client.SendEmail(toSendInput(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Email sent successfully. Message ID: %s", id)), nil
}
