package google_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietdesk/deskmcp/internal/google"
	"github.com/quietdesk/deskmcp/internal/server"
	"github.com/quietdesk/deskmcp/internal/tools/common"
)

// RegisterGoogleTools registers the OAuth helper tools with the MCP server.
func RegisterGoogleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getAuthURLTool := mcp.NewTool("google_get_auth_url",
		mcp.WithDescription("Get the OAuth URL to authorize Google services access (Gmail, Calendar, Tasks)"),
	)

	s.AddTool(getAuthURLTool, common.InstrumentedToolHandler("google_get_auth_url", "google", "auth", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAuthURL(ctx, request, sc)
		}))

	saveAuthCodeTool := mcp.NewTool("google_save_auth_code",
		mcp.WithDescription("Save the OAuth authorization code to complete Google services authentication (Gmail, Calendar, Tasks)"),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The authorization code from Google OAuth"),
		),
	)

	s.AddTool(saveAuthCodeTool, common.InstrumentedToolHandler("google_save_auth_code", "google", "auth", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSaveAuthCode(ctx, request, sc)
		}))

	return nil
}

func handleGetAuthURL(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg, err := sc.Provider().Config()
	if err != nil {
		return common.ClientError(sc.Provider(), "Google", err), nil
	}

	result := fmt.Sprintf(`To authorize Google services access (Gmail, Calendar, Tasks):

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google services
4. Copy the authorization code

5. Call the google_save_auth_code tool with the code to complete authentication`,
		google.AuthCodeURL(cfg))

	return mcp.NewToolResultText(result), nil
}

type saveAuthCodeArgs struct {
	Code string `mapstructure:"code"`
}

func handleSaveAuthCode(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args saveAuthCodeArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Code == "" {
		return mcp.NewToolResultError("code is required"), nil
	}

	provider := sc.Provider()
	cfg, err := provider.Config()
	if err != nil {
		return common.ClientError(provider, "Google", err), nil
	}

	if err := google.ExchangeAndSave(ctx, cfg, args.Code, provider.TokenPath()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save authorization code: %v", err)), nil
	}

	// Cached clients were built without a token; force a rebuild.
	sc.ResetClients()

	return mcp.NewToolResultText("Authorization successful. Google services token saved; Gmail, Calendar and Tasks tools are now available."), nil
}
