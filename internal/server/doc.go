// Package server holds the MCP server runtime state: the shared
// ServerContext with its lazily created Google service clients, and the
// standalone Prometheus metrics server.
package server
