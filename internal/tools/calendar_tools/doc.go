// Package calendar_tools registers the read-only Google Calendar MCP
// tools: listing calendars, listing events in a time window, and fetching
// a single event.
package calendar_tools
