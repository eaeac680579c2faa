// Package tasks provides a thin client for the Google Tasks API.
//
// Updates are read-overlay-write: partial input is merged onto the stored
// task before the full record is sent back, so unspecified fields survive.
package tasks
