package calendar_tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quietdesk/deskmcp/internal/server"
	"github.com/quietdesk/deskmcp/internal/tools/common"
)

// RegisterCalendarTools registers the read-only Calendar tools with the
// MCP server.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars the user has access to"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandler("calendar_list_calendars", "calendar", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List upcoming events from a calendar. Without time bounds the next 7 days are returned"),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("timeMin",
			mcp.Description("Lower time bound as RFC3339 (e.g., '2026-08-26T00:00:00Z')"),
		),
		mcp.WithString("timeMax",
			mcp.Description("Upper time bound as RFC3339"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events to return (default: 50)"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandler("calendar_list_events", "calendar", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get a single calendar event with attendees and status"),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("The event ID"),
		),
		mcp.WithString("calendarId",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
	)

	s.AddTool(getEventTool, common.InstrumentedToolHandler("calendar_get_event", "calendar", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.CalendarClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Calendar", err), nil
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
	}

	return common.JSONResult(calendars)
}

type listEventsArgs struct {
	CalendarID string `mapstructure:"calendarId"`
	TimeMin    string `mapstructure:"timeMin"`
	TimeMax    string `mapstructure:"timeMax"`
	MaxResults int64  `mapstructure:"maxResults"`
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := listEventsArgs{CalendarID: "primary", MaxResults: 50}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var timeMin, timeMax time.Time
	var err error
	if args.TimeMin != "" {
		timeMin, err = time.Parse(time.RFC3339, args.TimeMin)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMin: %v", err)), nil
		}
	}
	if args.TimeMax != "" {
		timeMax, err = time.Parse(time.RFC3339, args.TimeMax)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid timeMax: %v", err)), nil
		}
	}

	client, err := sc.CalendarClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Calendar", err), nil
	}

	events, err := client.ListEvents(args.CalendarID, timeMin, timeMax, args.MaxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
	}

	return common.JSONResult(events)
}

type getEventArgs struct {
	EventID    string `mapstructure:"eventId"`
	CalendarID string `mapstructure:"calendarId"`
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := getEventArgs{CalendarID: "primary"}
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.EventID == "" {
		return mcp.NewToolResultError("eventId is required"), nil
	}

	client, err := sc.CalendarClient()
	if err != nil {
		return common.ClientError(sc.Provider(), "Calendar", err), nil
	}

	event, err := client.GetEvent(args.CalendarID, args.EventID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get event: %v", err)), nil
	}

	return common.JSONResult(event)
}
