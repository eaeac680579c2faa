// Package calendar wraps the Google Calendar API with the read operations
// the server exposes: listing calendars, listing events over a time window
// with recurring events expanded, and fetching single events.
package calendar
