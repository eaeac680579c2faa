package google

import (
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	tasks "google.golang.org/api/tasks/v1"
)

// Scopes is the union of OAuth scopes required by every tool the server
// exposes. Mail, calendar and tasks share one credential, so the
// authorization request must cover all three services up front.
var Scopes = []string{
	gmail.GmailModifyScope,        // read, label changes, trash
	gmail.GmailSendScope,          // outbound mail and drafts
	gmail.GmailSettingsBasicScope, // send-as identity and signature
	calendar.CalendarReadonlyScope,
	tasks.TasksScope,
}
