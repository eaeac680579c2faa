// Package tasks_tools registers the Google Tasks MCP tools covering the
// full task lifecycle: listing, reading, creating, partial updates,
// completion and deletion.
package tasks_tools
