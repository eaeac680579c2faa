// Package gmail_tools registers the Gmail MCP tools: listing, reading and
// searching mail, sending with reply threading, the draft lifecycle, and
// label management.
package gmail_tools
