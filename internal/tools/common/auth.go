package common

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quietdesk/deskmcp/internal/google"
)

// ClientError converts a client construction failure into an actionable
// tool error. Missing credentials or tokens produce setup instructions
// instead of a bare error string, so an agent can walk the user through
// authorization.
func ClientError(provider *google.Provider, service string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, google.ErrCredentialsMissing):
		return mcp.NewToolResultError(fmt.Sprintf(
			"Google OAuth credentials not found at %s. Download an OAuth client JSON "+
				"from the Google Cloud console (APIs & Services > Credentials) and place "+
				"it there, then retry.", provider.CredentialsPath()))

	case errors.Is(err, google.ErrTokenMissing):
		cfg, cfgErr := provider.Config()
		if cfgErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load OAuth credentials: %v", cfgErr))
		}
		return mcp.NewToolResultError(fmt.Sprintf(`Google OAuth token not found. To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google services (Gmail, Calendar, Tasks)
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`,
			google.AuthCodeURL(cfg)))

	default:
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create %s client: %v", service, err))
	}
}
