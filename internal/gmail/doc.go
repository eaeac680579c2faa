// Package gmail wraps the Gmail API with the mail operations the server
// exposes: listing and fetching messages, sending, draft management, label
// changes, and reply threading. Provider responses are projected onto flat,
// stable-shaped records for agent consumption.
package gmail
