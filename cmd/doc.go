// Package cmd wires the deskmcp CLI: the serve command running the MCP
// server, the auth command for the one-time OAuth flow, and version.
package cmd
