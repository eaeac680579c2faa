// Package common provides shared helpers for the MCP tool packages:
// typed argument decoding, the instrumentation wrapper that records
// metrics and audit lines around every handler, and auth error messaging.
package common
